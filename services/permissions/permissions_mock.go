package permissions

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPermissionsService is a mock implementation of the
// services.PermissionsService interface
type MockPermissionsService struct {
	mock.Mock
}

func (m *MockPermissionsService) IsUnlocked(ctx context.Context, guildID string) (bool, error) {
	args := m.Called(ctx, guildID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionsService) Unlock(ctx context.Context, guildID string) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}
