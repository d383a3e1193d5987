package entity

import (
	"errors"
	"strings"
)

// Evaluation verdicts stored on a FileRecord.
const (
	StatusApproved         = "APPROVED"
	StatusNeedsImprovement = "NEEDS_IMPROVEMENT"
	StatusError            = "ERROR"
)

var ErrNoOwners = errors.New("file has no owners")

type Owner struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email" yaml:"email"`
}

// FileRecord is the persisted state of one tracked upload, keyed by the Drive file id.
type FileRecord struct {
	Id          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Owners      []Owner  `json:"owners" yaml:"owners"`
	CreatedTime string   `json:"createdTime" yaml:"createdTime"`
	ParentIds   []string `json:"parent_ids,omitempty" yaml:"parent_ids,omitempty"`
	FolderNames []string `json:"folder_names" yaml:"folder_names"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	Feedback    string   `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Notified    bool     `json:"notified,omitempty" yaml:"notified"`
	EvaluatedAt string   `json:"evaluated_at,omitempty" yaml:"evaluated_at,omitempty"`
}

// Uploader returns the first owner, which is treated as the uploader of record.
func (r *FileRecord) Uploader() (Owner, error) {
	if len(r.Owners) == 0 {
		return Owner{}, ErrNoOwners
	}
	return r.Owners[0], nil
}

// UploaderName prefers the display name and falls back to the email.
func (r *FileRecord) UploaderName() (string, error) {
	owner, err := r.Uploader()
	if err != nil {
		return "", err
	}
	if name := strings.TrimSpace(owner.Name); name != "" {
		return name, nil
	}
	return owner.Email, nil
}

func (r *FileRecord) IsEvaluated() bool {
	return r.Status != ""
}
