package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"logoforge/pkg/models"
)

// Store writes packaged artifacts to a directory on disk. Files are
// named <id>.<format>, so lookups survive a restart without an index.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the artifact and returns its record.
func (s *Store) Save(format models.ExportFormat, data []byte) (models.ExportRecord, error) {
	id := uuid.NewString()
	name := id + "." + string(format)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.ExportRecord{}, fmt.Errorf("write export file: %w", err)
	}
	return models.ExportRecord{
		ID:        id,
		Format:    format,
		FileName:  name,
		Size:      int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Lookup resolves an export id to its file path and format.
func (s *Store) Lookup(id string) (path string, format models.ExportFormat, err error) {
	if _, perr := uuid.Parse(id); perr != nil {
		return "", "", fmt.Errorf("invalid export id")
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, id+".*"))
	if err != nil || len(matches) == 0 {
		return "", "", os.ErrNotExist
	}
	path = matches[0]
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return path, models.ExportFormat(ext), nil
}
