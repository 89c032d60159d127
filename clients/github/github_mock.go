package github

import (
	"context"

	"github.com/stretchr/testify/mock"

	"monkeybot/models"
)

// MockTrackerClient is a mock implementation of the clients.TrackerClient interface
type MockTrackerClient struct {
	mock.Mock
}

func (m *MockTrackerClient) FetchLabels(ctx context.Context, repo string) ([]models.Label, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Label), args.Error(1)
}

func (m *MockTrackerClient) FetchLatestRelease(ctx context.Context, repo string) (*models.Release, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Release), args.Error(1)
}

func (m *MockTrackerClient) CreateIssue(
	ctx context.Context,
	repo string,
	issue models.NewIssue,
) (*models.Issue, error) {
	args := m.Called(ctx, repo, issue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}
