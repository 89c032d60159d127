package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"monkeybot/clients"
	"monkeybot/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of an
// open discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an already-opened discordgo session. The session must
// be open so the bot user (used as the application ID for command operations)
// is populated in state.
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

func (c *DiscordClient) appID() string {
	return c.session.State.User.ID
}

// UpdatePresence publishes the bot's single-line "Watching ..." status text
func (c *DiscordClient) UpdatePresence(statusText string) error {
	if err := c.session.UpdateWatchStatus(0, statusText); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

// GetGuildStats returns live membership counts for the guild, preferring the
// state cache so presence data is included when the gateway provides it
func (c *DiscordClient) GetGuildStats(guildID string) (*models.GuildStats, error) {
	guild, err := c.session.State.Guild(guildID)
	if err != nil {
		guild, err = c.session.Guild(guildID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
		}
	}

	stats := &models.GuildStats{
		MemberCount:  guild.MemberCount,
		HasPresences: len(guild.Presences) > 0,
	}
	for _, presence := range guild.Presences {
		if presence.Status == discordgo.StatusOnline {
			stats.OnlineCount++
		}
	}
	return stats, nil
}

// FindGuildCommand looks up an installed guild slash command by name
func (c *DiscordClient) FindGuildCommand(guildID, name string) (mo.Option[*models.Command], error) {
	commands, err := c.session.ApplicationCommands(c.appID(), guildID)
	if err != nil {
		return mo.None[*models.Command](), fmt.Errorf("failed to list guild commands: %w", err)
	}

	for _, command := range commands {
		if command.Name == name {
			return mo.Some(mapToCommand(command)), nil
		}
	}
	return mo.None[*models.Command](), nil
}

// UpdateCommandOptions pushes the command's full option list as a single
// remote update
func (c *DiscordClient) UpdateCommandOptions(guildID string, command *models.Command) error {
	edit := &discordgo.ApplicationCommand{
		Name:        command.Name,
		Description: command.Description,
		Options:     mapToSDKOptions(command.Options),
	}

	if _, err := c.session.ApplicationCommandEdit(c.appID(), guildID, command.ID, edit); err != nil {
		return fmt.Errorf("failed to edit command %s: %w", command.Name, err)
	}
	return nil
}

// GetRoleByID resolves a role from the guild's role cache, falling back to
// the API when the cache misses
func (c *DiscordClient) GetRoleByID(guildID, roleID string) (mo.Option[*models.Role], error) {
	role, err := c.session.State.Role(guildID, roleID)
	if err == nil {
		return mo.Some(&models.Role{ID: role.ID, Name: role.Name}), nil
	}

	roles, err := c.session.GuildRoles(guildID)
	if err != nil {
		return mo.None[*models.Role](), fmt.Errorf("failed to fetch guild roles: %w", err)
	}
	for _, role := range roles {
		if role.ID == roleID {
			return mo.Some(&models.Role{ID: role.ID, Name: role.Name}), nil
		}
	}
	return mo.None[*models.Role](), nil
}

// SendChannelMessage sends one message to the channel and waits for delivery
func (c *DiscordClient) SendChannelMessage(channelID, content string) error {
	if _, err := c.session.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

// mapToCommand converts a discordgo application command to our model
func mapToCommand(command *discordgo.ApplicationCommand) *models.Command {
	mapped := &models.Command{
		ID:          command.ID,
		Name:        command.Name,
		Description: command.Description,
	}
	for _, option := range command.Options {
		mapped.Options = append(mapped.Options, models.CommandOption{
			Type:        models.CommandOptionType(option.Type),
			Name:        option.Name,
			Description: option.Description,
			Required:    option.Required,
			Choices:     mapToChoices(option.Choices),
		})
	}
	return mapped
}

func mapToChoices(choices []*discordgo.ApplicationCommandOptionChoice) []models.LabelChoice {
	var mapped []models.LabelChoice
	for _, choice := range choices {
		value, ok := choice.Value.(string)
		if !ok {
			value = fmt.Sprint(choice.Value)
		}
		mapped = append(mapped, models.LabelChoice{Name: choice.Name, Value: value})
	}
	return mapped
}

func mapToSDKOptions(options []models.CommandOption) []*discordgo.ApplicationCommandOption {
	var mapped []*discordgo.ApplicationCommandOption
	for _, option := range options {
		sdkOption := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(option.Type),
			Name:        option.Name,
			Description: option.Description,
			Required:    option.Required,
		}
		for _, choice := range option.Choices {
			sdkOption.Choices = append(sdkOption.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choice.Name,
				Value: choice.Value,
			})
		}
		mapped = append(mapped, sdkOption)
	}
	return mapped
}
