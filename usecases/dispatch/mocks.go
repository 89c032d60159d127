package dispatch

import (
	"context"

	"github.com/stretchr/testify/mock"

	"monkeybot/models"
)

// MockCommandHandler is a mock implementation of the CommandHandler interface
type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) Handle(
	ctx context.Context,
	invocation *models.CommandInvocation,
	responder Responder,
) error {
	args := m.Called(ctx, invocation, responder)
	return args.Error(0)
}

// MockResponder is a mock implementation of the Responder interface
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Reply(content string) error {
	args := m.Called(content)
	return args.Error(0)
}

func (m *MockResponder) FollowUp(content string) error {
	args := m.Called(content)
	return args.Error(0)
}
