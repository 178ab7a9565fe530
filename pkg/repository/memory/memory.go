package memory

import (
	"github.com/secmon-lab/fieldswitch/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	property *propertyRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		property: newPropertyRepository(),
	}
}

func (m *Memory) Property() interfaces.PropertyRepository {
	return m.property
}

func (m *Memory) Close() error {
	return nil
}
