package discord

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"monkeybot/models"
)

// MockDiscordClient is a mock implementation of the clients.DiscordClient interface
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) UpdatePresence(statusText string) error {
	args := m.Called(statusText)
	return args.Error(0)
}

func (m *MockDiscordClient) GetGuildStats(guildID string) (*models.GuildStats, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildStats), args.Error(1)
}

func (m *MockDiscordClient) FindGuildCommand(guildID, name string) (mo.Option[*models.Command], error) {
	args := m.Called(guildID, name)
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockDiscordClient) UpdateCommandOptions(guildID string, command *models.Command) error {
	args := m.Called(guildID, command)
	return args.Error(0)
}

func (m *MockDiscordClient) GetRoleByID(guildID, roleID string) (mo.Option[*models.Role], error) {
	args := m.Called(guildID, roleID)
	return args.Get(0).(mo.Option[*models.Role]), args.Error(1)
}

func (m *MockDiscordClient) SendChannelMessage(channelID, content string) error {
	args := m.Called(channelID, content)
	return args.Error(0)
}
