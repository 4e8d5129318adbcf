package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
)

type recordRepository struct {
	mu      sync.RWMutex
	records map[model.RecordID]*model.HealthRecord
	order   []model.RecordID // insertion order, the backend's default scan order
}

func newRecordRepository() *recordRepository {
	return &recordRepository{
		records: make(map[model.RecordID]*model.HealthRecord),
	}
}

func copyRecord(r *model.HealthRecord) *model.HealthRecord {
	copied := *r
	if r.Embedding != nil {
		copied.Embedding = make([]float32, len(r.Embedding))
		copy(copied.Embedding, r.Embedding)
	}
	return &copied
}

func (r *recordRepository) Insert(ctx context.Context, record *model.HealthRecord) (*model.HealthRecord, error) {
	if record.Content == "" {
		return nil, goerr.New("record content must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRecord(record)
	if created.ID == "" {
		created.ID = model.NewRecordID()
	}
	if created.UploadedAt.IsZero() && created.Date == "" {
		created.UploadedAt = time.Now().UTC()
	}

	r.records[created.ID] = created
	r.order = append(r.order, created.ID)

	return copyRecord(created), nil
}

func (r *recordRepository) FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []*model.ScoredRecord
	for _, rec := range r.records {
		if len(rec.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, &model.ScoredRecord{
			Record: copyRecord(rec),
			Score:  cosineSimilarity(embedding, rec.Embedding),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	return candidates[:limit], nil
}

func (r *recordRepository) Scan(ctx context.Context, filter model.RecordFilter, limit int) ([]*model.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.HealthRecord, 0)
	for _, id := range r.order {
		if len(result) >= limit {
			break
		}
		rec := r.records[id]
		if filter.Matches(rec) {
			result = append(result, copyRecord(rec))
		}
	}

	return result, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
