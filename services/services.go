package services

import "context"

// LabelStore defines the interface for the label cache artifact. The cache
// always holds the most recent successfully fetched label set; a failed fetch
// never touches it.
type LabelStore interface {
	ReadLabels(ctx context.Context) ([]string, error)
	WriteLabels(ctx context.Context, labels []string) error
}

// PermissionsService defines the interface for the unlocked-guild set that
// gates restricted commands
type PermissionsService interface {
	IsUnlocked(ctx context.Context, guildID string) (bool, error)
	Unlock(ctx context.Context, guildID string) error
}
