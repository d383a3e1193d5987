package contract

import (
	"context"

	"notes-reviewer/internal/entity"
)

// FileStateRepository persists the id -> FileRecord mapping of every upload seen so far.
type FileStateRepository interface {
	Load(ctx context.Context) (map[string]*entity.FileRecord, error)
	// Save replaces the whole stored mapping.
	Save(ctx context.Context, records map[string]*entity.FileRecord) error
}
