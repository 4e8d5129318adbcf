package memory

import (
	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
)

// Memory is an in-process repository for development and tests
type Memory struct {
	record *recordRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		record: newRecordRepository(),
	}
}

func (m *Memory) Record() interfaces.RecordRepository {
	return m.record
}

// Close is a no-op for the in-memory backend
func (m *Memory) Close() error {
	return nil
}
