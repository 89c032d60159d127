package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discordclient "monkeybot/clients/discord"
	"monkeybot/clients/github"
	"monkeybot/core"
	"monkeybot/middleware"
	"monkeybot/models"
	"monkeybot/services/labelstore"
)

type reconcileTestDeps struct {
	tracker *github.MockTrackerClient
	discord *discordclient.MockDiscordClient
	store   *labelstore.MockLabelStore
	usecase *ReconcileUseCase
}

func setupReconcileTest(t *testing.T) *reconcileTestDeps {
	t.Helper()
	deps := &reconcileTestDeps{
		tracker: new(github.MockTrackerClient),
		discord: new(discordclient.MockDiscordClient),
		store:   new(labelstore.MockLabelStore),
	}
	deps.usecase = NewReconcileUseCase(
		deps.tracker,
		deps.discord,
		deps.store,
		middleware.NewErrorAlertMiddleware(middleware.AlertConfig{AppName: "monkeybot-test"}),
		"monkeys/tree",
		"guild-1",
		"chan-updates",
		"role-42",
	)
	return deps
}

func issueCommand(choices []models.LabelChoice) *models.Command {
	options := []models.CommandOption{
		{Type: models.CommandOptionTypeString, Name: "title", Description: "Issue title", Required: true},
		{Type: models.CommandOptionTypeString, Name: "description", Description: "Issue description"},
	}
	if choices != nil {
		for slot := 1; slot <= 3; slot++ {
			options = append(options, models.CommandOption{
				Type:    models.CommandOptionTypeString,
				Name:    fmt.Sprintf("label%d", slot),
				Choices: choices,
			})
		}
	}
	return &models.Command{ID: "cmd-1", Name: "issue", Description: "File a tracker issue", Options: options}
}

func TestRefreshPresence(t *testing.T) {
	ctx := context.Background()

	t.Run("uses online presence count when available", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.discord.On("GetGuildStats", "guild-1").
			Return(&models.GuildStats{OnlineCount: 7, MemberCount: 100, HasPresences: true}, nil)
		deps.discord.On("UpdatePresence", "over 7 monkeys").Return(nil)

		err := deps.usecase.RefreshPresence(ctx)

		assert.NoError(t, err)
		deps.discord.AssertExpectations(t)
	})

	t.Run("falls back to member count without presence data", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.discord.On("GetGuildStats", "guild-1").
			Return(&models.GuildStats{MemberCount: 100, HasPresences: false}, nil)
		deps.discord.On("UpdatePresence", "over 100 monkeys").Return(nil)

		err := deps.usecase.RefreshPresence(ctx)

		assert.NoError(t, err)
		deps.discord.AssertExpectations(t)
	})

	t.Run("propagates guild lookup failure", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.discord.On("GetGuildStats", "guild-1").Return(nil, errors.New("gateway down"))

		err := deps.usecase.RefreshPresence(ctx)

		assert.Error(t, err)
		deps.discord.AssertNotCalled(t, "UpdatePresence", mock.Anything)
	})
}

func TestSyncLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("persists labels and replicates choices across all three slots", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLabels", ctx, "monkeys/tree").
			Return([]models.Label{{Name: "bug"}, {Name: "docs"}}, nil)
		deps.store.On("WriteLabels", ctx, []string{"bug", "docs"}).Return(nil)
		deps.discord.On("FindGuildCommand", "guild-1", "issue").
			Return(mo.Some(issueCommand([]models.LabelChoice{{Name: "old", Value: "old"}})), nil)
		deps.store.On("ReadLabels", ctx).Return([]string{"bug", "docs"}, nil)

		var pushed *models.Command
		deps.discord.On("UpdateCommandOptions", "guild-1", mock.Anything).
			Run(func(args mock.Arguments) {
				pushed = args.Get(1).(*models.Command)
			}).
			Return(nil)

		err := deps.usecase.SyncLabels(ctx)

		require.NoError(t, err)
		require.NotNil(t, pushed)
		require.Len(t, pushed.Options, 5)
		assert.Equal(t, "title", pushed.Options[0].Name)
		assert.Equal(t, "description", pushed.Options[1].Name)

		wantChoices := []models.LabelChoice{{Name: "bug", Value: "bug"}, {Name: "docs", Value: "docs"}}
		for slot := 1; slot <= 3; slot++ {
			option := pushed.Options[1+slot]
			assert.Equal(t, fmt.Sprintf("label%d", slot), option.Name)
			assert.Equal(t, wantChoices, option.Choices, "slot %d choices must mirror the label set", slot)
		}
	})

	t.Run("is idempotent across runs with an unchanged label set", func(t *testing.T) {
		deps := setupReconcileTest(t)
		labels := []models.Label{{Name: "bug"}, {Name: "docs"}}
		names := []string{"bug", "docs"}
		choices := []models.LabelChoice{{Name: "bug", Value: "bug"}, {Name: "docs", Value: "docs"}}

		deps.tracker.On("FetchLabels", ctx, "monkeys/tree").Return(labels, nil)
		deps.store.On("WriteLabels", ctx, names).Return(nil)
		deps.store.On("ReadLabels", ctx).Return(names, nil)

		// first run sees stale choices, second run sees the synced command
		deps.discord.On("FindGuildCommand", "guild-1", "issue").
			Return(mo.Some(issueCommand(nil)), nil).Once()
		deps.discord.On("FindGuildCommand", "guild-1", "issue").
			Return(mo.Some(issueCommand(choices)), nil).Once()
		deps.discord.On("UpdateCommandOptions", "guild-1", mock.Anything).Return(nil)

		require.NoError(t, deps.usecase.SyncLabels(ctx))
		require.NoError(t, deps.usecase.SyncLabels(ctx))

		deps.discord.AssertNumberOfCalls(t, "UpdateCommandOptions", 1)
	})

	t.Run("fetch failure leaves cache and command untouched", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLabels", ctx, "monkeys/tree").Return(nil, errors.New("status 500"))

		err := deps.usecase.SyncLabels(ctx)

		assert.Error(t, err)
		deps.store.AssertNotCalled(t, "WriteLabels", mock.Anything, mock.Anything)
		deps.discord.AssertNotCalled(t, "UpdateCommandOptions", mock.Anything, mock.Anything)
	})

	t.Run("missing issue command aborts with not found", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLabels", ctx, "monkeys/tree").
			Return([]models.Label{{Name: "bug"}}, nil)
		deps.store.On("WriteLabels", ctx, []string{"bug"}).Return(nil)
		deps.discord.On("FindGuildCommand", "guild-1", "issue").
			Return(mo.None[*models.Command](), nil)

		err := deps.usecase.SyncLabels(ctx)

		assert.True(t, core.IsNotFoundError(err))
		deps.discord.AssertNotCalled(t, "UpdateCommandOptions", mock.Anything, mock.Anything)
	})
}

func TestAnnounceLatestRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("announces a release inside the freshness window", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLatestRelease", ctx, "monkeys/tree").Return(&models.Release{
			Name:      "v1.2.3",
			Body:      "- fix a\n- fix b",
			CreatedAt: time.Now().Add(-59 * time.Minute),
		}, nil)
		deps.discord.On("GetRoleByID", "guild-1", "role-42").
			Return(mo.Some(&models.Role{ID: "role-42", Name: "updates"}), nil)

		var sent []string
		deps.discord.On("SendChannelMessage", "chan-updates", mock.Anything).
			Run(func(args mock.Arguments) {
				sent = append(sent, args.String(1))
			}).
			Return(nil)

		err := deps.usecase.AnnounceLatestRelease(ctx)

		require.NoError(t, err)
		require.NotEmpty(t, sent)
		assert.Equal(t, "<@&role-42> v1.2.3", sent[0])
		assert.Equal(t, "```\n- fix a\n- fix b\n```", sent[1])
	})

	t.Run("skips a release outside the freshness window", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLatestRelease", ctx, "monkeys/tree").Return(&models.Release{
			Name:      "v1.0.0",
			Body:      "old news",
			CreatedAt: time.Now().Add(-61 * time.Minute),
		}, nil)

		err := deps.usecase.AnnounceLatestRelease(ctx)

		assert.NoError(t, err)
		deps.discord.AssertNotCalled(t, "SendChannelMessage", mock.Anything, mock.Anything)
	})

	t.Run("missing update role aborts before sending", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLatestRelease", ctx, "monkeys/tree").Return(&models.Release{
			Name:      "v1.2.3",
			Body:      "notes",
			CreatedAt: time.Now().Add(-5 * time.Minute),
		}, nil)
		deps.discord.On("GetRoleByID", "guild-1", "role-42").
			Return(mo.None[*models.Role](), nil)

		err := deps.usecase.AnnounceLatestRelease(ctx)

		assert.True(t, core.IsNotFoundError(err))
		deps.discord.AssertNotCalled(t, "SendChannelMessage", mock.Anything, mock.Anything)
	})

	t.Run("send failure aborts the remaining sequence", func(t *testing.T) {
		deps := setupReconcileTest(t)
		deps.tracker.On("FetchLatestRelease", ctx, "monkeys/tree").Return(&models.Release{
			Name:      "v1.2.3",
			Body:      "notes",
			CreatedAt: time.Now().Add(-5 * time.Minute),
		}, nil)
		deps.discord.On("GetRoleByID", "guild-1", "role-42").
			Return(mo.Some(&models.Role{ID: "role-42", Name: "updates"}), nil)
		deps.discord.On("SendChannelMessage", "chan-updates", mock.Anything).
			Return(errors.New("channel gone")).Once()

		err := deps.usecase.AnnounceLatestRelease(ctx)

		assert.Error(t, err)
		deps.discord.AssertNumberOfCalls(t, "SendChannelMessage", 1)
	})
}
