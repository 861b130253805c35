package mocks

import (
	"github.com/brettbedarf/vfstree"
	"github.com/stretchr/testify/mock"
)

// MockIDGenerator implements vfstree.IDGenerator for testing across packages
type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) NewID() string {
	args := m.Called()

	// Handle function return types (for generated sequences)
	if fn, ok := args.Get(0).(func() string); ok {
		return fn()
	}
	return args.String(0)
}

var _ vfstree.IDGenerator = (*MockIDGenerator)(nil)
