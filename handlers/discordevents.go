package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"monkeybot/core"
	"monkeybot/models"
	"monkeybot/usecases/dispatch"
)

// DiscordEventsHandler owns the gateway session and maps inbound interaction
// events to dispatcher invocations
type DiscordEventsHandler struct {
	session         *discordgo.Session
	dispatchUseCase *dispatch.DispatchUseCase
}

func NewDiscordEventsHandler(
	botToken string,
	dispatchUseCase *dispatch.DispatchUseCase,
) (*DiscordEventsHandler, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	handler := &DiscordEventsHandler{
		session:         session,
		dispatchUseCase: dispatchUseCase,
	}

	session.AddHandler(handler.handleInteractionCreatedEvent)

	// presence and member intents feed the presence updater's guild stats
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildPresences |
		discordgo.IntentsGuildMembers

	return handler, nil
}

// Session exposes the underlying session for the narrow Discord client wrapper
func (h *DiscordEventsHandler) Session() *discordgo.Session {
	return h.session
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	h.session.Close()
}

func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		invocation := mapToCommandInvocation(i)
		responder := &interactionResponder{session: s, interaction: i.Interaction}
		h.dispatchUseCase.DispatchCommand(ctx, invocation, responder)
	case discordgo.InteractionMessageComponent:
		h.dispatchUseCase.HandleComponent(ctx, &models.ComponentInvocation{
			GuildID:  i.GuildID,
			CustomID: i.MessageComponentData().CustomID,
		})
	default:
		log.Printf("🔘 Ignoring interaction of type %d", i.Type)
	}
}

// mapToCommandInvocation maps a Discord SDK interaction event to our model
func mapToCommandInvocation(i *discordgo.InteractionCreate) *models.CommandInvocation {
	data := i.ApplicationCommandData()

	options := make(map[string]string, len(data.Options))
	for _, option := range data.Options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			options[option.Name] = option.StringValue()
		}
	}

	var userID, username string
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
		username = i.Member.User.Username
	} else if i.User != nil {
		userID = i.User.ID
		username = i.User.Username
	}

	return &models.CommandInvocation{
		ID:          core.NewID("inv"),
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		UserID:      userID,
		Username:    username,
		CommandName: data.Name,
		Options:     options,
	}
}

// interactionResponder implements dispatch.Responder on one interaction.
// Reply fails once the interaction has been acknowledged; FollowUp is the
// fallback delivery mechanism for that case.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionResponder) Reply(content string) error {
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (r *interactionResponder) FollowUp(content string) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{Content: content})
	return err
}
