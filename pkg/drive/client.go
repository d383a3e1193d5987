// Package drive wraps the Google Drive v3 API calls the monitor needs: folder listing,
// file metadata with parent folder names, and downloads.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notes-reviewer/internal/entity"

	"github.com/patrickmn/go-cache"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

var ErrNotFound = errors.New("drive file not found")

const (
	listFields     = "nextPageToken, files(id, name)"
	metadataFields = "id, name, owners(displayName, emailAddress), createdTime, parents"
)

// RemoteFile is one entry of a folder listing.
type RemoteFile struct {
	Id   string
	Name string
}

// Client is the storage collaborator of the monitor loop.
type Client interface {
	ListFiles(ctx context.Context, folderID string) ([]RemoteFile, error)
	GetFileMetadata(ctx context.Context, fileID string) (*entity.FileRecord, error)
	// DownloadFile stores the raw bytes under destDir and returns the local path.
	DownloadFile(ctx context.Context, fileID, fileName, destDir string) (string, error)
}

type driveClient struct {
	files       *drive.FilesService
	folderNames *cache.Cache
}

func NewClient(srv *drive.Service) Client {
	return &driveClient{
		files: srv.Files,
		// Folder renames are rare; an hour of staleness in an informational field is fine.
		folderNames: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (c *driveClient) ListFiles(ctx context.Context, folderID string) ([]RemoteFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", escapeQuery(folderID))

	var files []RemoteFile
	err := c.files.List().
		Q(query).
		Fields(listFields).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				files = append(files, RemoteFile{Id: f.Id, Name: f.Name})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folderID, wrapNotFound(err))
	}
	return files, nil
}

func (c *driveClient) GetFileMetadata(ctx context.Context, fileID string) (*entity.FileRecord, error) {
	f, err := c.files.Get(fileID).Fields(metadataFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get metadata for %s: %w", fileID, wrapNotFound(err))
	}

	record := &entity.FileRecord{
		Id:          f.Id,
		Name:        f.Name,
		Owners:      make([]entity.Owner, 0, len(f.Owners)),
		CreatedTime: f.CreatedTime,
		ParentIds:   f.Parents,
		FolderNames: make([]string, 0, len(f.Parents)),
	}
	for _, o := range f.Owners {
		record.Owners = append(record.Owners, entity.Owner{Name: o.DisplayName, Email: o.EmailAddress})
	}

	for _, pid := range f.Parents {
		name, err := c.folderName(ctx, pid)
		if err != nil {
			return nil, err
		}
		record.FolderNames = append(record.FolderNames, name)
	}
	return record, nil
}

func (c *driveClient) folderName(ctx context.Context, folderID string) (string, error) {
	if name, found := c.folderNames.Get(folderID); found {
		return name.(string), nil
	}
	p, err := c.files.Get(folderID).Fields("name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get parent folder %s: %w", folderID, wrapNotFound(err))
	}
	c.folderNames.Set(folderID, p.Name, cache.DefaultExpiration)
	return p.Name, nil
}

func (c *driveClient) DownloadFile(ctx context.Context, fileID, fileName, destDir string) (string, error) {
	resp, err := c.files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("download %s: %w", fileID, wrapNotFound(err))
	}
	defer resp.Body.Close()

	return saveDownload(resp.Body, fileID, fileName, destDir)
}

// LocalPath is where a download of fileID is stored: <destDir>/<id>_<base name>.
func LocalPath(destDir, fileID, fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return filepath.Join(destDir, fmt.Sprintf("%s_%s", fileID, base))
}

func saveDownload(body io.Reader, fileID, fileName, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir %s: %w", destDir, err)
	}

	localPath := LocalPath(destDir, fileID, fileName)
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", localPath, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("write %s: %w", localPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", localPath, err)
	}
	return localPath, nil
}

func wrapNotFound(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
