package chromem

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	chromem "github.com/philippgille/chromem-go"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

type recordRepository struct {
	col *chromem.Collection
}

func newRecordRepository(col *chromem.Collection) *recordRepository {
	return &recordRepository{col: col}
}

// toMetadata flattens the record payload into chromem's string metadata
func toMetadata(r *model.HealthRecord) map[string]string {
	meta := map[string]string{
		"type": r.Kind.String(),
	}
	if r.Modality != "" {
		meta["modality"] = r.Modality.String()
	}
	if r.Metric != "" {
		meta["metric"] = r.Metric.String()
	}
	if r.Date != "" {
		meta["date"] = r.Date
	}
	if !r.UploadedAt.IsZero() {
		meta["uploaded_at"] = r.UploadedAt.Format(time.RFC3339)
	}
	if r.ChildName != "" {
		meta["child_name"] = r.ChildName
		meta["vaccine"] = r.Vaccine
		meta["age_months"] = strconv.Itoa(r.AgeMonths)
	}
	return meta
}

func fromResult(id string, metadata map[string]string, content string, embedding []float32) *model.HealthRecord {
	r := &model.HealthRecord{
		ID:        model.RecordID(id),
		Kind:      types.RecordKind(metadata["type"]),
		Modality:  types.Modality(metadata["modality"]),
		Content:   content,
		Embedding: embedding,
		Metric:    types.VitalMetric(metadata["metric"]),
		Date:      metadata["date"],
		ChildName: metadata["child_name"],
		Vaccine:   metadata["vaccine"],
	}
	if v := metadata["uploaded_at"]; v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			r.UploadedAt = ts
		}
	}
	if v := metadata["age_months"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.AgeMonths = n
		}
	}
	return r
}

func (r *recordRepository) Insert(ctx context.Context, record *model.HealthRecord) (*model.HealthRecord, error) {
	if record.Content == "" {
		return nil, goerr.New("record content must not be empty")
	}
	if record.ID == "" {
		record.ID = model.NewRecordID()
	}

	doc := chromem.Document{
		ID:        string(record.ID),
		Content:   record.Content,
		Embedding: record.Embedding,
		Metadata:  toMetadata(record),
	}

	if err := r.col.AddDocument(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to add document", goerr.V("id", record.ID))
	}

	return record, nil
}

func (r *recordRepository) FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRecord, error) {
	results, err := r.query(ctx, embedding, limit, nil)
	if err != nil {
		return nil, err
	}

	scored := make([]*model.ScoredRecord, 0, len(results))
	for _, res := range results {
		scored = append(scored, &model.ScoredRecord{
			Record: fromResult(res.ID, res.Metadata, res.Content, res.Embedding),
			Score:  float64(res.Similarity),
		})
	}

	return scored, nil
}

func (r *recordRepository) Scan(ctx context.Context, filter model.RecordFilter, limit int) ([]*model.HealthRecord, error) {
	where := map[string]string{}
	if filter.Kind != "" {
		where["type"] = filter.Kind.String()
	}
	if filter.Metric != "" {
		where["metric"] = filter.Metric.String()
	}

	// chromem only exposes embedding queries, so a scan is a filtered
	// query against a fixed probe vector; the similarity ranking is
	// irrelevant because scans guarantee no order.
	probe := make([]float32, model.EmbeddingDimension)
	probe[0] = 1

	results, err := r.query(ctx, probe, limit, where)
	if err != nil {
		return nil, err
	}

	records := make([]*model.HealthRecord, 0, len(results))
	for _, res := range results {
		records = append(records, fromResult(res.ID, res.Metadata, res.Content, res.Embedding))
	}

	return records, nil
}

// query wraps QueryEmbedding. chromem rejects nResults larger than the
// number of matching documents, so the limit is clamped to the collection
// size and then walked down when a where filter shrinks the candidate
// set further.
func (r *recordRepository) query(ctx context.Context, embedding []float32, limit int, where map[string]string) ([]chromem.Result, error) {
	count := r.col.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	for n := limit; n >= 1; n-- {
		results, err := r.col.QueryEmbedding(ctx, embedding, n, where, nil)
		if err == nil {
			return results, nil
		}
		if isInsufficientDocsError(err) {
			if n == 1 {
				// Nothing matches the filter
				return nil, nil
			}
			continue
		}
		return nil, goerr.Wrap(err, "chromem query failed")
	}

	return nil, nil
}

func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
