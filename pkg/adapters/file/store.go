package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// DefaultPath is used when no directory is configured.
var DefaultPath = filepath.Join(".algoviz", "pages")

var _ ports.PageStore = (*Store)(nil)

// Store keeps page records as JSON files in a directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultPath.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultPath
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(pageID string) (string, error) {
	if pageID == "" {
		return "", fmt.Errorf("pageID cannot be empty")
	}
	if strings.ContainsAny(pageID, `/\`) || pageID == "." || pageID == ".." {
		return "", fmt.Errorf("invalid pageID %q", pageID)
	}
	return filepath.Join(s.BasePath, pageID+".json"), nil
}

// Save writes the record to a temporary file and renames it into place, so
// readers never see a partial record.
func (s *Store) Save(ctx context.Context, record *domain.PageRecord) error {
	destPath, err := s.path(record.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure page directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page record: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+record.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to page record: %w", err)
	}
	return nil
}

// Load retrieves the record of a page.
func (s *Store) Load(ctx context.Context, pageID string) (*domain.PageRecord, error) {
	filePath, err := s.path(pageID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to read page record: %w", err)
	}

	var record domain.PageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page record: %w", err)
	}
	return &record, nil
}

// Delete removes the record file. Deleting an unknown page is not an error.
func (s *Store) Delete(ctx context.Context, pageID string) error {
	filePath, err := s.path(pageID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete page record: %w", err)
	}
	return nil
}

// List returns the IDs of every stored page, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}
