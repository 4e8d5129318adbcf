package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/repository/memory"
)

func unitVec(hot int) []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[hot] = 1
	return vec
}

func TestInsert(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	t.Run("assigns ID", func(t *testing.T) {
		created, err := repo.Record().Insert(ctx, &model.HealthRecord{
			Kind:      types.RecordKindReport,
			Modality:  types.ModalityPDF,
			Content:   "Hemoglobin 11.2 g/dL",
			Embedding: unitVec(0),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, string(created.ID)).NotEqual("")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := repo.Record().Insert(ctx, &model.HealthRecord{
			Kind: types.RecordKindReport,
		})
		gt.Error(t, err)
	})

	t.Run("stored copy is isolated from caller", func(t *testing.T) {
		rec := &model.HealthRecord{
			Kind:      types.RecordKindReport,
			Content:   "original",
			Embedding: unitVec(1),
		}
		created, err := repo.Record().Insert(ctx, rec)
		gt.NoError(t, err).Required()

		rec.Content = "mutated"
		found, err := repo.Record().Scan(ctx, model.RecordFilter{}, 100)
		gt.NoError(t, err).Required()

		for _, f := range found {
			if f.ID == created.ID {
				gt.Value(t, f.Content).Equal("original")
			}
		}
	})
}

func TestFindByEmbedding(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	for i := 0; i < 3; i++ {
		_, err := repo.Record().Insert(ctx, &model.HealthRecord{
			Kind:      types.RecordKindReport,
			Content:   "record",
			Embedding: unitVec(i),
		})
		gt.NoError(t, err).Required()
	}

	t.Run("ranked by similarity", func(t *testing.T) {
		scored, err := repo.Record().FindByEmbedding(ctx, unitVec(1), 3)
		gt.NoError(t, err).Required()
		gt.Array(t, scored).Length(3)

		// The aligned vector scores 1, the orthogonal ones 0
		gt.Value(t, scored[0].Score).Equal(1.0)
		gt.Value(t, scored[0].Record.Embedding[1]).Equal(float32(1))
		gt.Value(t, scored[1].Score).Equal(0.0)
	})

	t.Run("limit caps results", func(t *testing.T) {
		scored, err := repo.Record().FindByEmbedding(ctx, unitVec(0), 2)
		gt.NoError(t, err).Required()
		gt.Array(t, scored).Length(2)
	})

	t.Run("empty store returns nothing", func(t *testing.T) {
		empty := memory.New()
		scored, err := empty.Record().FindByEmbedding(ctx, unitVec(0), 5)
		gt.NoError(t, err).Required()
		gt.Array(t, scored).Length(0)
	})
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	records := []*model.HealthRecord{
		{Kind: types.RecordKindVitals, Metric: types.VitalMetricWeight, Content: "w1", Date: "2024-01-01", Embedding: unitVec(0)},
		{Kind: types.RecordKindVitals, Metric: types.VitalMetricHeight, Content: "h1", Date: "2024-01-01", Embedding: unitVec(1)},
		{Kind: types.RecordKindVitals, Metric: types.VitalMetricWeight, Content: "w2", Date: "2024-02-01", Embedding: unitVec(2)},
		{Kind: types.RecordKindReport, Content: "r1", Embedding: unitVec(3)},
	}
	for _, rec := range records {
		_, err := repo.Record().Insert(ctx, rec)
		gt.NoError(t, err).Required()
	}

	t.Run("filter by kind and metric", func(t *testing.T) {
		filter := model.RecordFilter{
			Kind:   types.RecordKindVitals,
			Metric: types.VitalMetricWeight,
		}
		found, err := repo.Record().Scan(ctx, filter, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)
		gt.Value(t, found[0].Content).Equal("w1")
		gt.Value(t, found[1].Content).Equal("w2")
	})

	t.Run("no filter returns all in insertion order", func(t *testing.T) {
		found, err := repo.Record().Scan(ctx, model.RecordFilter{}, 100)
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(4)
		gt.Value(t, found[0].Content).Equal("w1")
		gt.Value(t, found[3].Content).Equal("r1")
	})

	t.Run("limit caps results", func(t *testing.T) {
		found, err := repo.Record().Scan(ctx, model.RecordFilter{}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)
	})
}
