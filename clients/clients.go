package clients

import (
	"context"

	"github.com/samber/mo"

	"monkeybot/models"
)

// TrackerClient defines the interface for the external issue tracker whose
// labels and releases are polled
type TrackerClient interface {
	FetchLabels(ctx context.Context, repo string) ([]models.Label, error)
	FetchLatestRelease(ctx context.Context, repo string) (*models.Release, error)
	CreateIssue(ctx context.Context, repo string, issue models.NewIssue) (*models.Issue, error)
}

// DiscordClient defines the narrow Discord surface consumed by the
// reconciler and dispatcher. Session lifecycle and event wiring live in the
// handlers package, not behind this interface.
type DiscordClient interface {
	// Presence operations
	UpdatePresence(statusText string) error
	GetGuildStats(guildID string) (*models.GuildStats, error)

	// Slash command metadata operations
	FindGuildCommand(guildID, name string) (mo.Option[*models.Command], error)
	UpdateCommandOptions(guildID string, command *models.Command) error

	// Guild and message operations
	GetRoleByID(guildID, roleID string) (mo.Option[*models.Role], error)
	SendChannelMessage(channelID, content string) error
}
