package implementation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"notes-reviewer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStateRepository_LoadMissingFile(t *testing.T) {
	repo := NewFileStateRepository(filepath.Join(t.TempDir(), "state", "known_files.json"))

	records, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStateRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "known_files.json")
	repo := NewFileStateRepository(path)
	ctx := context.Background()

	want := map[string]*entity.FileRecord{
		"file-1": {
			Id:          "file-1",
			Name:        "Linear Regression Notes",
			Owners:      []entity.Owner{{Name: "Ada", Email: "ada@example.com"}, {Email: "ta@example.com"}},
			CreatedTime: "2024-03-01T10:00:00Z",
			ParentIds:   []string{"folder-1"},
			FolderNames: []string{"Week 3"},
			Status:      entity.StatusApproved,
			Feedback:    "APPROVED\nAll good.",
			Notified:    true,
			EvaluatedAt: "2024-03-01T10:01:00Z",
		},
		"file-2": {
			Id:          "file-2",
			Name:        "draft.txt",
			Owners:      []entity.Owner{{Email: "bob@example.com"}},
			CreatedTime: "2024-03-02T09:00:00Z",
			FolderNames: []string{},
			Status:      entity.StatusNeedsImprovement,
			Feedback:    "NEEDS_IMPROVEMENT\n- missing examples",
		},
	}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStateRepository_SaveReplacesWholeMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_files.json")
	repo := NewFileStateRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, map[string]*entity.FileRecord{"a": {Id: "a"}, "b": {Id: "b"}}))
	require.NoError(t, repo.Save(ctx, map[string]*entity.FileRecord{"a": {Id: "a", Status: entity.StatusError}}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.StatusError, got["a"].Status)
}

func TestFileStateRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_files.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStateRepository(path).Load(context.Background())

	assert.Error(t, err)
}

func TestFileStateRepository_FailedSaveKeepsPreviousState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	path := filepath.Join(t.TempDir(), "known_files.json")
	repo := NewFileStateRepository(path)

	require.NoError(t, repo.Save(ctx, map[string]*entity.FileRecord{"a": {Id: "a"}}))
	cancel()
	require.Error(t, repo.Save(ctx, map[string]*entity.FileRecord{"b": {Id: "b"}}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "a")
	assert.NotContains(t, got, "b")
}

func TestFileStateRepository_NullContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIDs []string
	}{
		{name: "null document", content: "null", wantIDs: []string{}},
		{name: "null entry", content: `{"a": {"id": "a", "name": "a.txt"}, "b": null}`, wantIDs: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "known_files.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := NewFileStateRepository(path).Load(context.Background())

			require.NoError(t, err)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for id, rec := range got {
				require.NotNil(t, rec)
				ids = append(ids, id)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)

			got["new"] = &entity.FileRecord{Id: "new"}
		})
	}
}
