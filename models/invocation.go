package models

// CommandInvocation represents one inbound slash command invocation after
// mapping from the Discord SDK event
type CommandInvocation struct {
	ID          string
	GuildID     string
	ChannelID   string
	UserID      string
	Username    string
	CommandName string
	Options     map[string]string
}

// ComponentInvocation represents a non-command interaction (e.g. a button press)
type ComponentInvocation struct {
	GuildID  string
	CustomID string
}
