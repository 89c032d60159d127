package labelstore

import (
	"context"
	"fmt"
	"log"

	"monkeybot/services/filestore"
	"monkeybot/utils"
)

// LabelStore persists the most recently fetched tracker label set as a
// pretty-printed JSON array. Reads and overwrites are idempotent per tracker
// state, so concurrent reconciliation cycles can share the file safely.
type LabelStore struct {
	path string
}

func NewLabelStore(path string) *LabelStore {
	utils.AssertInvariant(path != "", "label cache path cannot be empty")
	return &LabelStore{path: path}
}

func (s *LabelStore) ReadLabels(ctx context.Context) ([]string, error) {
	labels, err := filestore.Read(s.path, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read label cache: %w", err)
	}
	return labels, nil
}

func (s *LabelStore) WriteLabels(ctx context.Context, labels []string) error {
	if err := filestore.Write(s.path, labels); err != nil {
		return fmt.Errorf("failed to write label cache: %w", err)
	}
	log.Printf("💾 Persisted %d labels to cache", len(labels))
	return nil
}
