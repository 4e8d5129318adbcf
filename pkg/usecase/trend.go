package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// NoWeightRecordsMessage is returned when no weight records exist
const NoWeightRecordsMessage = "No weight records found"

// WeightTrendInsight annotates a non-empty weight history response
const WeightTrendInsight = "Weight history retrieved from long-term memory"

// TrendUseCase reads vital sign history ordered by date
type TrendUseCase struct {
	repo  interfaces.Repository
	limit int
}

// WeightSample is one weight observation in the trend
type WeightSample struct {
	Date   string
	Record string
}

// TrendResult is either an ordered history with its insight line or the
// explicit empty message.
type TrendResult struct {
	Metric  types.VitalMetric
	Message string
	Insight string
	History []WeightSample
}

// Weight retrieves all weight records (capped) sorted ascending by their
// ISO-8601 date string, which equals chronological order.
func (uc *TrendUseCase) Weight(ctx context.Context) (*TrendResult, error) {
	filter := model.RecordFilter{
		Kind:   types.RecordKindVitals,
		Metric: types.VitalMetricWeight,
	}

	records, err := uc.repo.Record().Scan(ctx, filter, uc.limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan weight records",
			goerr.T(types.TagPersistenceFailure))
	}

	if len(records) == 0 {
		return &TrendResult{
			Metric:  types.VitalMetricWeight,
			Message: NoWeightRecordsMessage,
		}, nil
	}

	history := make([]WeightSample, len(records))
	for i, r := range records {
		history[i] = WeightSample{Date: r.Date, Record: r.Content}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})

	return &TrendResult{
		Metric:  types.VitalMetricWeight,
		Insight: WeightTrendInsight,
		History: history,
	}, nil
}
