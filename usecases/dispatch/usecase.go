package dispatch

import (
	"context"
	"fmt"
	"log"

	"monkeybot/appctx"
	"monkeybot/clients"
	"monkeybot/models"
	"monkeybot/services"
)

// unlockCommandName is exempt from the permission gate so a locked guild can
// unlock itself
const unlockCommandName = "unlock"

// DispatchUseCase routes inbound command invocations to registered handlers
// under the permission gate. Handler failures are contained here: they are
// logged, forwarded to the operator log channel and acknowledged to the
// invoker, and never escape the dispatcher.
type DispatchUseCase struct {
	registry           map[string]CommandHandler
	permissionsService services.PermissionsService
	discordClient      clients.DiscordClient
	logChannelID       string
	devMode            bool
}

// NewDispatchUseCase creates a new instance of DispatchUseCase
func NewDispatchUseCase(
	permissionsService services.PermissionsService,
	discordClient clients.DiscordClient,
	logChannelID string,
	devMode bool,
) *DispatchUseCase {
	return &DispatchUseCase{
		registry:           make(map[string]CommandHandler),
		permissionsService: permissionsService,
		discordClient:      discordClient,
		logChannelID:       logChannelID,
		devMode:            devMode,
	}
}

// RegisterCommand adds a handler to the registry. The registry is populated
// at process start and read-only during dispatch.
func (d *DispatchUseCase) RegisterCommand(name string, handler CommandHandler) {
	d.registry[name] = handler
}

// AttachDiscordClient wires the client used for operator log messages. The
// gateway session that backs the client is only created after the dispatcher
// exists, so this runs during startup before any event arrives.
func (d *DispatchUseCase) AttachDiscordClient(client clients.DiscordClient) {
	d.discordClient = client
}

// DispatchCommand runs one invocation through its state machine:
// received -> permission checked -> executing -> succeeded/failed. It never
// panics out and the invoker always receives some terminal acknowledgement
// unless both delivery mechanisms fail.
func (d *DispatchUseCase) DispatchCommand(
	ctx context.Context,
	invocation *models.CommandInvocation,
	responder Responder,
) {
	ctx = appctx.SetInvocationID(ctx, invocation.ID)
	log.Printf("📨 [%s] Dispatching command /%s from %s in guild %s",
		invocation.ID, invocation.CommandName, invocation.Username, invocation.GuildID)

	handler, ok := d.registry[invocation.CommandName]
	if !ok {
		log.Printf("🔍 [%s] Command /%s not found in registry", invocation.ID, invocation.CommandName)
		d.replyWithFallback(invocation, responder,
			fmt.Sprintf("Unknown command: `/%s`", invocation.CommandName))
		return
	}

	if !d.isPermitted(ctx, invocation) {
		log.Printf("🔒 [%s] Guild %s is not unlocked - refusing /%s",
			invocation.ID, invocation.GuildID, invocation.CommandName)
		d.replyWithFallback(invocation, responder,
			"This server is not unlocked yet. Ask an operator to run `/unlock` first.")
		return
	}

	if err := d.executeHandler(ctx, handler, invocation, responder); err != nil {
		d.reportHandlerFailure(invocation, err, responder)
		return
	}

	log.Printf("📨 [%s] Completed successfully - dispatched /%s", invocation.ID, invocation.CommandName)
}

// HandleComponent logs non-command interaction events (e.g. button presses);
// no handler lookup or permission check applies to them
func (d *DispatchUseCase) HandleComponent(ctx context.Context, invocation *models.ComponentInvocation) {
	log.Printf("🔘 Component interaction %q in guild %s - ignoring", invocation.CustomID, invocation.GuildID)
}

func (d *DispatchUseCase) isPermitted(ctx context.Context, invocation *models.CommandInvocation) bool {
	if d.devMode {
		return true
	}
	if invocation.CommandName == unlockCommandName {
		return true
	}

	unlocked, err := d.permissionsService.IsUnlocked(ctx, invocation.GuildID)
	if err != nil {
		log.Printf("❌ [%s] Failed to read permission state: %v", invocation.ID, err)
		return false
	}
	return unlocked
}

// executeHandler invokes the handler with panic containment; a panicking
// handler surfaces as an ordinary handler error
func (d *DispatchUseCase) executeHandler(
	ctx context.Context,
	handler CommandHandler,
	invocation *models.CommandInvocation,
	responder Responder,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, invocation, responder)
}

func (d *DispatchUseCase) reportHandlerFailure(
	invocation *models.CommandInvocation,
	handlerErr error,
	responder Responder,
) {
	log.Printf("❌ [%s] Command /%s failed: %v", invocation.ID, invocation.CommandName, handlerErr)

	operatorMessage := fmt.Sprintf("⚠️ Command `/%s` failed for %s: %v",
		invocation.CommandName, invocation.Username, handlerErr)
	if err := d.discordClient.SendChannelMessage(d.logChannelID, operatorMessage); err != nil {
		log.Printf("❌ [%s] Failed to forward error to operator log channel: %v", invocation.ID, err)
	}

	d.replyWithFallback(invocation, responder, "Something went wrong running that command. The operators have been notified.")
}

// replyWithFallback attempts each delivery mechanism in order until one
// succeeds or all are exhausted
func (d *DispatchUseCase) replyWithFallback(
	invocation *models.CommandInvocation,
	responder Responder,
	content string,
) {
	strategies := []struct {
		name    string
		deliver func(string) error
	}{
		{"reply", responder.Reply},
		{"follow-up", responder.FollowUp},
	}

	for _, strategy := range strategies {
		if err := strategy.deliver(content); err != nil {
			log.Printf("⚠️ [%s] %s delivery failed: %v", invocation.ID, strategy.name, err)
			continue
		}
		return
	}
	log.Printf("❌ [%s] All delivery mechanisms failed - invoker got no acknowledgement", invocation.ID)
}
