package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/repository/memory"
	"github.com/swasthya-lab/swasthya/pkg/service/embedding"
	"github.com/swasthya-lab/swasthya/pkg/usecase"
)

// stubExtractor returns fixed text regardless of the input document
type stubExtractor struct {
	text     string
	modality types.Modality
	err      error
}

func (s *stubExtractor) Extract(ctx context.Context, filename string, data []byte) (*interfaces.Extraction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &interfaces.Extraction{Text: s.text, Modality: s.modality}, nil
}

func newTestUseCases(t *testing.T, extractor interfaces.Extractor, opts ...usecase.Option) (*usecase.UseCases, interfaces.Repository) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo, embedding.NewMock(), extractor, opts...)
	return uc, repo
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("stores extracted text with embedding", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{
			text:     "Amoxicillin 250mg twice daily for 5 days",
			modality: types.ModalityPDF,
		})

		result, err := uc.Ingest.UploadDocument(ctx, types.RecordKindPrescription, "rx.pdf", []byte("%PDF"))
		gt.NoError(t, err).Required()
		gt.Value(t, string(result.RecordID)).NotEqual("")
		gt.Value(t, result.Kind).Equal(types.RecordKindPrescription)
		gt.Value(t, result.Modality).Equal(types.ModalityPDF)
		gt.Value(t, result.CharactersSaved).Equal(len("Amoxicillin 250mg twice daily for 5 days"))

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, stored[0].Content).Equal("Amoxicillin 250mg twice daily for 5 days")
		gt.Array(t, stored[0].Embedding).Length(model.EmbeddingDimension)
	})

	t.Run("empty upload rejected before extraction", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{text: "unused"})

		_, err := uc.Ingest.UploadDocument(ctx, types.RecordKindReport, "lab.pdf", nil)
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)
	})

	t.Run("extraction failure stores nothing", func(t *testing.T) {
		extractErr := goerrEmptyExtraction()
		uc, repo := newTestUseCases(t, &stubExtractor{err: extractErr})

		_, err := uc.Ingest.UploadDocument(ctx, types.RecordKindReport, "blank.png", []byte("img"))
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindEmptyExtraction)

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(0)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{text: "unused"})

		_, err := uc.Ingest.UploadDocument(ctx, types.RecordKind("diagnosis"), "x.pdf", []byte("data"))
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)
	})
}

func TestVitalsAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("one record per present measurement", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		weight := 12.5
		height := 88.0
		result, err := uc.Vitals.Add(ctx, model.VitalsInput{
			Weight:        &weight,
			Height:        &height,
			BloodPressure: "110/70",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, result.Metrics).Length(3)
		gt.Value(t, result.Metrics[0]).Equal(types.VitalMetricWeight)

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{Kind: types.RecordKindVitals}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(3)
		gt.Value(t, stored[0].Date).Equal(result.Date)
		gt.Value(t, stored[0].Modality).Equal(types.ModalityStructured)
	})

	t.Run("single measurement yields one record", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		weight := 9.8
		result, err := uc.Vitals.Add(ctx, model.VitalsInput{Weight: &weight})
		gt.NoError(t, err).Required()
		gt.Array(t, result.Metrics).Length(1)

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, strings.HasPrefix(stored[0].Content, "Weight recorded: 9.8 kg")).Equal(true)
	})

	t.Run("all measurements absent succeeds with zero records", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		result, err := uc.Vitals.Add(ctx, model.VitalsInput{})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Date).NotEqual("")
		gt.Array(t, result.Metrics).Length(0)

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(0)
	})

	t.Run("custom units flow into the sentence", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{},
			usecase.WithUnits(model.VitalUnits{Weight: "lb", Height: "in"}))

		weight := 27.0
		_, err := uc.Vitals.Add(ctx, model.VitalsInput{Weight: &weight})
		gt.NoError(t, err).Required()

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, strings.Contains(stored[0].Content, "27 lb")).Equal(true)
	})
}

func TestVaccinationAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("stores sentence with computed age", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		result, err := uc.Vaccination.Add(ctx, "Aarav", "DTaP", "2024-01-15", "2024-03-15")
		gt.NoError(t, err).Required()
		gt.Value(t, result.AgeMonths).Equal(2)
		gt.Value(t, string(result.RecordID)).NotEqual("")

		stored, err := repo.Record().Scan(ctx, model.RecordFilter{Kind: types.RecordKindVaccination}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, stored[0].Content).Equal("Aarav received DTaP vaccine at 2 months of age on 2024-03-15")
		gt.Value(t, stored[0].ChildName).Equal("Aarav")
		gt.Value(t, stored[0].Vaccine).Equal("DTaP")
		gt.Value(t, stored[0].AgeMonths).Equal(2)
		gt.Value(t, stored[0].Date).Equal("2024-03-15")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{})

		_, err := uc.Vaccination.Add(ctx, "", "DTaP", "2024-01-15", "2024-03-15")
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)

		_, err = uc.Vaccination.Add(ctx, "Aarav", "", "2024-01-15", "2024-03-15")
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{})

		_, err := uc.Vaccination.Add(ctx, "Aarav", "DTaP", "15-01-2024", "2024-03-15")
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)

		_, err = uc.Vaccination.Add(ctx, "Aarav", "DTaP", "2024-01-15", "March 15")
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)
	})
}

func TestAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store answers explicitly", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{})

		result, err := uc.Recall.Ask(ctx, "what medicines were prescribed?")
		gt.NoError(t, err).Required()
		gt.Value(t, result.Answer).Equal(usecase.NoResultsAnswer)
		gt.Array(t, result.Records).Length(0)
	})

	t.Run("retrieves stored records with scores", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{
			text:     "Amoxicillin 250mg twice daily",
			modality: types.ModalityPDF,
		})

		_, err := uc.Ingest.UploadDocument(ctx, types.RecordKindPrescription, "rx.pdf", []byte("%PDF"))
		gt.NoError(t, err).Required()

		result, err := uc.Recall.Ask(ctx, "Amoxicillin 250mg twice daily")
		gt.NoError(t, err).Required()
		gt.Value(t, result.Answer).Equal("")
		gt.Array(t, result.Records).Length(1)
		gt.Value(t, result.Records[0].Kind).Equal(types.RecordKindPrescription)
		gt.Value(t, result.Records[0].Content).Equal("Amoxicillin 250mg twice daily")

		// The mock embedder maps identical text to identical vectors
		if result.Records[0].Score < 0.999 {
			t.Errorf("expected near-perfect similarity, got %f", result.Records[0].Score)
		}
	})

	t.Run("result count capped by ask limit", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{}, usecase.WithAskLimit(2))

		embedder := embedding.NewMock()
		for _, content := range []string{"r1", "r2", "r3", "r4"} {
			vec, err := embedder.Embed(ctx, content)
			gt.NoError(t, err).Required()
			_, err = repo.Record().Insert(ctx, &model.HealthRecord{
				Kind:      types.RecordKindReport,
				Content:   content,
				Embedding: vec,
			})
			gt.NoError(t, err).Required()
		}

		result, err := uc.Recall.Ask(ctx, "r1")
		gt.NoError(t, err).Required()
		gt.Array(t, result.Records).Length(2)
	})

	t.Run("empty question rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{})

		_, err := uc.Recall.Ask(ctx, "")
		gt.Error(t, err)
		gt.Value(t, types.ErrorKind(err)).Equal(types.KindValidationFailure)
	})
}

func TestWeightTrend(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store returns message", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{})

		result, err := uc.Trend.Weight(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Message).Equal(usecase.NoWeightRecordsMessage)
		gt.Value(t, result.Insight).Equal("")
		gt.Array(t, result.History).Length(0)
	})

	t.Run("history sorted ascending by date", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		embedder := embedding.NewMock()
		dates := []string{"2024-03-01", "2024-01-01", "2024-02-01"}
		for _, date := range dates {
			content := "Weight recorded: 12 kg on " + date
			vec, err := embedder.Embed(ctx, content)
			gt.NoError(t, err).Required()
			_, err = repo.Record().Insert(ctx, &model.HealthRecord{
				Kind:      types.RecordKindVitals,
				Metric:    types.VitalMetricWeight,
				Content:   content,
				Date:      date,
				Embedding: vec,
			})
			gt.NoError(t, err).Required()
		}

		result, err := uc.Trend.Weight(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Message).Equal("")
		gt.Value(t, result.Metric).Equal(types.VitalMetricWeight)
		gt.Value(t, result.Insight).Equal(usecase.WeightTrendInsight)
		gt.Array(t, result.History).Length(3)
		gt.Value(t, result.History[0].Date).Equal("2024-01-01")
		gt.Value(t, result.History[1].Date).Equal("2024-02-01")
		gt.Value(t, result.History[2].Date).Equal("2024-03-01")
	})

	t.Run("height and bp records excluded", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{})

		vec := make([]float32, model.EmbeddingDimension)
		vec[0] = 1
		_, err := repo.Record().Insert(ctx, &model.HealthRecord{
			Kind:      types.RecordKindVitals,
			Metric:    types.VitalMetricHeight,
			Content:   "Height recorded: 88 cm on 2024-01-01",
			Date:      "2024-01-01",
			Embedding: vec,
		})
		gt.NoError(t, err).Required()

		result, err := uc.Trend.Weight(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Message).Equal(usecase.NoWeightRecordsMessage)
	})
}

func TestListing(t *testing.T) {
	ctx := context.Background()

	t.Run("previews bounded to the cap", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &stubExtractor{
			text:     strings.Repeat("long report text ", 30),
			modality: types.ModalityPDF,
		})

		_, err := uc.Ingest.UploadDocument(ctx, types.RecordKindReport, "lab.pdf", []byte("%PDF"))
		gt.NoError(t, err).Required()

		result, err := uc.Listing.All(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalRecords).Equal(1)
		gt.Value(t, len(result.Records[0].ContentPreview)).Equal(model.ContentPreviewLength)
	})

	t.Run("count capped by listing limit", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &stubExtractor{}, usecase.WithListingLimit(2))

		vec := make([]float32, model.EmbeddingDimension)
		vec[0] = 1
		for _, content := range []string{"a", "b", "c"} {
			_, err := repo.Record().Insert(ctx, &model.HealthRecord{
				Kind:      types.RecordKindReport,
				Content:   content,
				Embedding: vec,
			})
			gt.NoError(t, err).Required()
		}

		result, err := uc.Listing.All(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalRecords).Equal(2)
	})
}

func goerrEmptyExtraction() error {
	return goerr.New("no readable text found in document", goerr.T(types.TagEmptyExtraction))
}
