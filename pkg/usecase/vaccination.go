package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// VaccinationUseCase stores vaccination events
type VaccinationUseCase struct {
	writer *recordWriter
}

// VaccinationResult reports a stored vaccination event
type VaccinationResult struct {
	RecordID  model.RecordID
	AgeMonths int
}

// Add validates the four required fields, computes the age in months and
// persists a single record.
func (uc *VaccinationUseCase) Add(ctx context.Context, childName, vaccine, dob, date string) (*VaccinationResult, error) {
	if childName == "" {
		return nil, goerr.New("child name is required", goerr.T(types.TagValidationFailure))
	}
	if vaccine == "" {
		return nil, goerr.New("vaccine name is required", goerr.T(types.TagValidationFailure))
	}

	dobDate, err := time.Parse(model.ISODate, dob)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid date of birth",
			goerr.T(types.TagValidationFailure),
			goerr.V("dob", dob))
	}

	vacDate, err := time.Parse(model.ISODate, date)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid vaccination date",
			goerr.T(types.TagValidationFailure),
			goerr.V("date", date))
	}

	input := model.VaccinationInput{
		ChildName:   childName,
		DateOfBirth: dobDate,
		Vaccine:     vaccine,
		Date:        vacDate,
	}

	record := &model.HealthRecord{
		Kind:      types.RecordKindVaccination,
		Modality:  types.ModalityStructured,
		Content:   input.Sentence(),
		Date:      vacDate.Format(model.ISODate),
		ChildName: childName,
		Vaccine:   vaccine,
		AgeMonths: input.AgeMonths(),
	}

	created, err := uc.writer.write(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("vaccination stored",
		"record_id", created.ID,
		"vaccine", vaccine,
		"age_months", record.AgeMonths,
	)

	return &VaccinationResult{
		RecordID:  created.ID,
		AgeMonths: record.AgeMonths,
	}, nil
}
