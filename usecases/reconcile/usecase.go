package reconcile

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"monkeybot/chunker"
	"monkeybot/clients"
	"monkeybot/core"
	"monkeybot/middleware"
	"monkeybot/models"
	"monkeybot/services"
)

const (
	// issueCommandName is the installed slash command whose option choices
	// mirror the tracker's label set
	issueCommandName = "issue"
	// fixedLeadingOptionCount is the number of leading options on the issue
	// command that are not label slots (title, description)
	fixedLeadingOptionCount = 2
	// labelSlotCount is the number of trailing choice slots; the label set is
	// replicated across all of them to work around the per-slot choice cap
	labelSlotCount = 3
	// releaseFreshnessWindow is the sole release de-duplication mechanism: a
	// release older than this is treated as already announced. Downtime longer
	// than the window silently skips a release.
	releaseFreshnessWindow = time.Hour
)

// ReconcileUseCase periodically reconciles bot-visible metadata: presence
// text, the issue command's label choices and release announcements
type ReconcileUseCase struct {
	trackerClient clients.TrackerClient
	discordClient clients.DiscordClient
	labelStore    services.LabelStore
	alerts        *middleware.ErrorAlertMiddleware

	trackerRepo      string
	guildID          string
	updatesChannelID string
	updateRoleID     string

	status *statusTracker
}

// NewReconcileUseCase creates a new instance of ReconcileUseCase
func NewReconcileUseCase(
	trackerClient clients.TrackerClient,
	discordClient clients.DiscordClient,
	labelStore services.LabelStore,
	alerts *middleware.ErrorAlertMiddleware,
	trackerRepo string,
	guildID string,
	updatesChannelID string,
	updateRoleID string,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		trackerClient:    trackerClient,
		discordClient:    discordClient,
		labelStore:       labelStore,
		alerts:           alerts,
		trackerRepo:      trackerRepo,
		guildID:          guildID,
		updatesChannelID: updatesChannelID,
		updateRoleID:     updateRoleID,
		status:           newStatusTracker(),
	}
}

// RefreshPresence recomputes and publishes the bot's status line from live
// guild membership counts
func (u *ReconcileUseCase) RefreshPresence(ctx context.Context) error {
	stats, err := u.discordClient.GetGuildStats(u.guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild stats: %w", err)
	}

	count := stats.MemberCount
	if stats.HasPresences {
		count = stats.OnlineCount
	}

	statusText := fmt.Sprintf("over %d monkeys", count)
	if err := u.discordClient.UpdatePresence(statusText); err != nil {
		return fmt.Errorf("failed to publish presence: %w", err)
	}

	log.Printf("👀 Presence updated: watching %s", statusText)
	return nil
}

// SyncLabels fetches the tracker's label set, persists it to the local cache
// and mirrors it into the issue command's trailing choice slots. The remote
// command is only updated when the canonical choice list differs from what is
// already installed.
func (u *ReconcileUseCase) SyncLabels(ctx context.Context) error {
	log.Printf("📋 Starting to sync labels for %s", u.trackerRepo)

	labels, err := u.trackerClient.FetchLabels(ctx, u.trackerRepo)
	if err != nil {
		// prior cache is retained untouched on fetch failure
		return fmt.Errorf("failed to fetch labels: %w", err)
	}

	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.Name)
	}
	if err := u.labelStore.WriteLabels(ctx, names); err != nil {
		return fmt.Errorf("failed to persist labels: %w", err)
	}

	maybeCommand, err := u.discordClient.FindGuildCommand(u.guildID, issueCommandName)
	if err != nil {
		return fmt.Errorf("failed to look up %s command: %w", issueCommandName, err)
	}
	if !maybeCommand.IsPresent() {
		return fmt.Errorf("%s command is not installed in guild %s: %w",
			issueCommandName, u.guildID, core.ErrNotFound)
	}
	command := maybeCommand.MustGet()

	// re-read through the cache so the command always reflects the artifact
	cached, err := u.labelStore.ReadLabels(ctx)
	if err != nil {
		return fmt.Errorf("failed to re-read label cache: %w", err)
	}
	choices := buildLabelChoices(cached)

	if installedChoicesMatch(command, choices) {
		log.Printf("📋 Labels already in sync for %s - skipping command update", issueCommandName)
		return nil
	}

	leading := command.Options
	if len(leading) > fixedLeadingOptionCount {
		leading = leading[:fixedLeadingOptionCount]
	}
	options := make([]models.CommandOption, 0, len(leading)+labelSlotCount)
	options = append(options, leading...)
	for slot := 1; slot <= labelSlotCount; slot++ {
		options = append(options, models.CommandOption{
			Type:        models.CommandOptionTypeString,
			Name:        fmt.Sprintf("label%d", slot),
			Description: fmt.Sprintf("Issue label #%d", slot),
			Choices:     choices,
		})
	}
	command.Options = options

	if err := u.discordClient.UpdateCommandOptions(u.guildID, command); err != nil {
		return fmt.Errorf("failed to update %s command options: %w", issueCommandName, err)
	}

	log.Printf("📋 Completed successfully - synced %d labels into %s command", len(choices), issueCommandName)
	return nil
}

// AnnounceLatestRelease fetches the latest tracker release and, if it is
// fresh, posts it to the updates channel as an ordered chunk sequence
func (u *ReconcileUseCase) AnnounceLatestRelease(ctx context.Context) error {
	release, err := u.trackerClient.FetchLatestRelease(ctx, u.trackerRepo)
	if err != nil {
		return fmt.Errorf("failed to fetch latest release: %w", err)
	}

	age := time.Since(release.CreatedAt)
	if age > releaseFreshnessWindow {
		log.Printf("🔍 Latest release %q is %s old - already announced or not yet relevant", release.Name, age.Round(time.Minute))
		return nil
	}

	maybeRole, err := u.discordClient.GetRoleByID(u.guildID, u.updateRoleID)
	if err != nil {
		return fmt.Errorf("failed to resolve update role: %w", err)
	}
	if !maybeRole.IsPresent() {
		return fmt.Errorf("update role %s missing from guild %s: %w", u.updateRoleID, u.guildID, core.ErrNotFound)
	}
	role := maybeRole.MustGet()

	messages := chunker.SplitAnnouncement(role.Mention(), release.Name, release.Body)
	for i, message := range messages {
		// sends are awaited one at a time to preserve channel ordering
		if err := u.discordClient.SendChannelMessage(u.updatesChannelID, message); err != nil {
			return fmt.Errorf("failed to send announcement chunk %d/%d: %w", i+1, len(messages), err)
		}
	}

	log.Printf("📣 Announced release %q in %d messages", release.Name, len(messages))
	return nil
}

// buildLabelChoices produces the canonical choice list replicated into every
// label slot
func buildLabelChoices(labels []string) []models.LabelChoice {
	choices := make([]models.LabelChoice, 0, len(labels))
	for _, label := range labels {
		choices = append(choices, models.LabelChoice{Name: label, Value: label})
	}
	return choices
}

// installedChoicesMatch is the idempotence gate: it compares the canonical
// choice list against the first label slot (the third option overall) of the
// installed command
func installedChoicesMatch(command *models.Command, choices []models.LabelChoice) bool {
	if len(command.Options) <= fixedLeadingOptionCount {
		return false
	}
	return slices.Equal(command.Options[fixedLeadingOptionCount].Choices, choices)
}
