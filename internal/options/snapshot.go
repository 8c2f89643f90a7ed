package options

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"scenario-builder/internal/model"
)

// Snapshot is an on-disk capture of every category's option set, produced by
// cmd/update-settings and consumed by the offline CLI as a provider seed.
type Snapshot struct {
	UpdatedAt  string                    `json:"updated_at"` // ISO 8601 timestamp
	Categories map[string][]model.Option `json:"categories"`
}

// LoadSnapshot loads an option snapshot from a JSON file.
func LoadSnapshot(filePath string) (*Snapshot, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse settings snapshot: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot writes an option snapshot to a JSON file.
func SaveSnapshot(snap *Snapshot, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write settings snapshot: %w", err)
	}
	return nil
}

// FetchOptions serves a category's options from the snapshot, letting a
// snapshot stand in for the live provider in offline use. Categories absent
// from the snapshot behave like unknown categories on the live API.
func (s *Snapshot) FetchOptions(_ context.Context, categoryKey string) ([]model.Option, error) {
	opts, ok := s.Categories[categoryKey]
	if !ok {
		return nil, &ProviderError{
			StatusCode: http.StatusNotFound,
			Code:       "UNKNOWN_CATEGORY",
			Message:    fmt.Sprintf("snapshot has no setting category %q", categoryKey),
		}
	}
	return opts, nil
}

// DefaultSnapshotPath returns the default path for the settings snapshot.
func DefaultSnapshotPath() string {
	if path := os.Getenv("SETTINGS_FILE"); path != "" {
		return path
	}
	return "./data/settings.json"
}
