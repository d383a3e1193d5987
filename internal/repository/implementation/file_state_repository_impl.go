package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"notes-reviewer/internal/entity"
	"notes-reviewer/internal/repository/contract"
)

type FileStateRepositoryImpl struct {
	path string
}

func NewFileStateRepository(path string) contract.FileStateRepository {
	return &FileStateRepositoryImpl{path: path}
}

func (r *FileStateRepositoryImpl) Load(ctx context.Context) (map[string]*entity.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*entity.FileRecord{}, nil
		}
		return nil, fmt.Errorf("read state file %s: %w", r.path, err)
	}

	records := map[string]*entity.FileRecord{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", r.path, err)
	}
	// A literal null decodes to a nil map and null entries carry no record.
	if records == nil {
		records = map[string]*entity.FileRecord{}
	}
	for id, rec := range records {
		if rec == nil {
			delete(records, id)
		}
	}
	return records, nil
}

// Save writes to a temp file in the same directory and renames it over the state file,
// so readers only ever see a complete mapping.
func (r *FileStateRepositoryImpl) Save(ctx context.Context, records map[string]*entity.FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = map[string]*entity.FileRecord{}
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp state file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp state file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("rename temp state file to %s: %w", r.path, err)
	}
	return nil
}
