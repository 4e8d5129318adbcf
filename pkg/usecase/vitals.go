package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// VitalsUseCase stores structured vital sign measurements
type VitalsUseCase struct {
	writer *recordWriter
	units  model.VitalUnits
}

// VitalsResult reports which metrics were stored by one call
type VitalsResult struct {
	Date    string
	Metrics []types.VitalMetric
}

// Add persists one record per present measurement, keyed to today's
// date. A call with no measurements succeeds and stores nothing. The
// inserts are independent: if a later insert fails, earlier ones stay
// committed and the error is returned as-is.
func (uc *VitalsUseCase) Add(ctx context.Context, input model.VitalsInput) (*VitalsResult, error) {
	date := today()
	result := &VitalsResult{Date: date, Metrics: []types.VitalMetric{}}

	for _, entry := range input.Entries(date, uc.units) {
		record := &model.HealthRecord{
			Kind:     types.RecordKindVitals,
			Modality: types.ModalityStructured,
			Content:  entry.Content,
			Metric:   entry.Metric,
			Date:     date,
		}

		created, err := uc.writer.write(ctx, record)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to store vitals record",
				goerr.V("metric", entry.Metric),
				goerr.V("stored", result.Metrics))
		}

		result.Metrics = append(result.Metrics, entry.Metric)
		logging.From(ctx).Info("vitals stored",
			"record_id", created.ID,
			"metric", entry.Metric,
			"date", date,
		)
	}

	return result, nil
}
