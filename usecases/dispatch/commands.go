package dispatch

import (
	"context"
	"fmt"
	"log"
	"slices"

	"monkeybot/clients"
	"monkeybot/models"
	"monkeybot/services"
)

// PingHandler is the registry smoke command
type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

func (h *PingHandler) Handle(ctx context.Context, invocation *models.CommandInvocation, responder Responder) error {
	return responder.Reply("🐒 Still watching the trees.")
}

// UnlockHandler grants the invoking guild membership in the unlocked set when
// the supplied key matches the configured unlock key
type UnlockHandler struct {
	permissionsService services.PermissionsService
	unlockKey          string
}

func NewUnlockHandler(permissionsService services.PermissionsService, unlockKey string) *UnlockHandler {
	return &UnlockHandler{
		permissionsService: permissionsService,
		unlockKey:          unlockKey,
	}
}

func (h *UnlockHandler) Handle(ctx context.Context, invocation *models.CommandInvocation, responder Responder) error {
	if h.unlockKey == "" {
		return responder.Reply("Unlocking is not configured on this deployment.")
	}
	if invocation.Options["key"] != h.unlockKey {
		log.Printf("🔒 [%s] Wrong unlock key for guild %s", invocation.ID, invocation.GuildID)
		return responder.Reply("That is not the right key.")
	}

	if err := h.permissionsService.Unlock(ctx, invocation.GuildID); err != nil {
		return fmt.Errorf("failed to unlock guild %s: %w", invocation.GuildID, err)
	}
	return responder.Reply("🔓 This server is now unlocked.")
}

// IssueHandler files a tracker issue from the command's title/description
// options plus up to three selected labels
type IssueHandler struct {
	trackerClient clients.TrackerClient
	trackerRepo   string
}

func NewIssueHandler(trackerClient clients.TrackerClient, trackerRepo string) *IssueHandler {
	return &IssueHandler{
		trackerClient: trackerClient,
		trackerRepo:   trackerRepo,
	}
}

func (h *IssueHandler) Handle(ctx context.Context, invocation *models.CommandInvocation, responder Responder) error {
	title := invocation.Options["title"]
	if title == "" {
		return responder.Reply("An issue needs a title.")
	}

	body := invocation.Options["description"]
	if body != "" {
		body += "\n\n"
	}
	body += fmt.Sprintf("_Filed from Discord by %s_", invocation.Username)

	var labels []string
	for _, slot := range []string{"label1", "label2", "label3"} {
		label := invocation.Options[slot]
		if label != "" && !slices.Contains(labels, label) {
			labels = append(labels, label)
		}
	}

	issue, err := h.trackerClient.CreateIssue(ctx, h.trackerRepo, models.NewIssue{
		Title:  title,
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracker issue: %w", err)
	}

	log.Printf("📝 [%s] Created issue #%d for %s", invocation.ID, issue.Number, invocation.Username)
	return responder.Reply(fmt.Sprintf("✅ Created issue #%d: %s", issue.Number, issue.URL))
}
