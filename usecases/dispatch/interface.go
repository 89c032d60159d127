package dispatch

import (
	"context"

	"monkeybot/models"
)

// CommandHandler executes one registered slash command. Handler errors are
// contained by the dispatcher; handlers never need to report their own
// failures to the invoker.
type CommandHandler interface {
	Handle(ctx context.Context, invocation *models.CommandInvocation, responder Responder) error
}

// Responder delivers terminal acknowledgements for one invocation. Reply is
// the primary delivery mechanism; FollowUp is the fallback for interactions
// that have already been acknowledged.
type Responder interface {
	Reply(content string) error
	FollowUp(content string) error
}
