package labelstore

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLabelStore is a mock implementation of the services.LabelStore interface
type MockLabelStore struct {
	mock.Mock
}

func (m *MockLabelStore) ReadLabels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLabelStore) WriteLabels(ctx context.Context, labels []string) error {
	args := m.Called(ctx, labels)
	return args.Error(0)
}
