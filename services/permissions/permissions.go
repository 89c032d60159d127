package permissions

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"monkeybot/services/filestore"
	"monkeybot/utils"
)

// PermissionsService owns the set of guilds that have been unlocked for
// restricted commands. The set is persisted as a JSON array so an unlock
// survives restarts.
type PermissionsService struct {
	path string
	mu   sync.Mutex
}

func NewPermissionsService(path string) *PermissionsService {
	utils.AssertInvariant(path != "", "permissions path cannot be empty")
	return &PermissionsService{path: path}
}

func (s *PermissionsService) IsUnlocked(ctx context.Context, guildID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guilds, err := filestore.Read(s.path, []string{})
	if err != nil {
		return false, fmt.Errorf("failed to read permission state: %w", err)
	}
	return slices.Contains(guilds, guildID), nil
}

func (s *PermissionsService) Unlock(ctx context.Context, guildID string) error {
	log.Printf("📋 Starting to unlock guild %s", guildID)
	s.mu.Lock()
	defer s.mu.Unlock()

	guilds, err := filestore.Read(s.path, []string{})
	if err != nil {
		return fmt.Errorf("failed to read permission state: %w", err)
	}
	if slices.Contains(guilds, guildID) {
		log.Printf("📋 Guild %s already unlocked - nothing to do", guildID)
		return nil
	}

	guilds = append(guilds, guildID)
	if err := filestore.Write(s.path, guilds); err != nil {
		return fmt.Errorf("failed to persist permission state: %w", err)
	}

	log.Printf("📋 Completed successfully - unlocked guild %s", guildID)
	return nil
}
