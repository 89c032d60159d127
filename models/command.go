package models

// CommandOptionType mirrors the subset of Discord option types this bot uses
type CommandOptionType int

const (
	CommandOptionTypeString CommandOptionType = 3
)

// Command represents an installed guild slash command as seen by this bot.
// Options carries the full ordered option list; label choice slots come after
// the fixed leading options.
type Command struct {
	ID          string
	Name        string
	Description string
	Options     []CommandOption
}

// CommandOption is one option attached to a slash command
type CommandOption struct {
	Type        CommandOptionType
	Name        string
	Description string
	Required    bool
	Choices     []LabelChoice
}

// Role represents a guild role resolved from the role cache
type Role struct {
	ID   string
	Name string
}

// Mention returns the role's mention string as rendered in message content
func (r *Role) Mention() string {
	return "<@&" + r.ID + ">"
}

// GuildStats holds the live membership counts used for presence updates
type GuildStats struct {
	OnlineCount  int
	MemberCount  int
	HasPresences bool
}
