package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"notes-reviewer/internal/config"
	"notes-reviewer/internal/entity"
	"notes-reviewer/internal/pkg/logger"
	"notes-reviewer/internal/pkg/mailer"
	"notes-reviewer/internal/repository/contract"
	"notes-reviewer/pkg/drive"

	"github.com/google/uuid"
)

const monitorModule = "MonitorService"

type IMonitorService interface {
	// Run polls until ctx is cancelled. It returns nil on cancellation and an error only when
	// fail-fast is configured and a listing or file fails.
	Run(ctx context.Context) error
	// RunOnce performs a single poll/detect/dispatch cycle.
	RunOnce(ctx context.Context) (*CycleReport, error)
}

type CycleReport struct {
	CycleID   string
	Listed    int
	New       int
	Processed int
	Failed    int
}

type MonitorDependencies struct {
	Drive       drive.Client
	State       contract.FileStateRepository
	Critique    ICritiqueService
	Content     IEmailContentService
	Mailer      mailer.IEmailService
	Scope       entity.ScopeConfig
	Monitor     *config.MonitorConfig
	DownloadDir string
	Logger      logger.ILogger
}

type monitorService struct {
	drive       drive.Client
	state       contract.FileStateRepository
	critique    ICritiqueService
	content     IEmailContentService
	mailer      mailer.IEmailService
	scope       entity.ScopeConfig
	cfg         *config.MonitorConfig
	downloadDir string
	logger      logger.ILogger

	known map[string]*entity.FileRecord
	now   func() time.Time
}

func NewMonitorService(deps MonitorDependencies) IMonitorService {
	return &monitorService{
		drive:       deps.Drive,
		state:       deps.State,
		critique:    deps.Critique,
		content:     deps.Content,
		mailer:      deps.Mailer,
		scope:       deps.Scope,
		cfg:         deps.Monitor,
		downloadDir: deps.DownloadDir,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

func (s *monitorService) Run(ctx context.Context) error {
	if err := s.loadState(ctx); err != nil {
		return err
	}

	s.logger.Info(monitorModule, fmt.Sprintf("Starting Drive Monitor (poll every %ds)", s.cfg.PollIntervalSeconds), map[string]interface{}{
		"folder_id":   s.cfg.FolderID,
		"known_files": len(s.known),
		"objectives":  len(s.scope.LearningObjectives),
	})

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		if _, err := s.runCycle(ctx); err != nil {
			return err
		}
		timer.Reset(s.cfg.PollInterval())
	}
}

func (s *monitorService) RunOnce(ctx context.Context) (*CycleReport, error) {
	if err := s.loadState(ctx); err != nil {
		return nil, err
	}
	return s.runCycle(ctx)
}

func (s *monitorService) loadState(ctx context.Context) error {
	if s.known != nil {
		return nil
	}
	known, err := s.state.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	s.known = known
	return nil
}

// runCycle lists the folder and processes every id not yet in the state, in listing order.
// Work runs on a context detached from ctx so a signal never interrupts a file half-way;
// cancellation is honoured between files.
func (s *monitorService) runCycle(ctx context.Context) (*CycleReport, error) {
	report := &CycleReport{CycleID: uuid.NewString()}
	work := context.WithoutCancel(ctx)

	files, err := s.drive.ListFiles(work, s.cfg.FolderID)
	if err != nil {
		if s.cfg.FailFast {
			return report, fmt.Errorf("list folder: %w", err)
		}
		s.logger.Error(monitorModule, "Listing failed, retrying next cycle", map[string]interface{}{
			"cycle_id": report.CycleID,
			"error":    err,
		})
		return report, nil
	}
	report.Listed = len(files)

	newFiles := make([]drive.RemoteFile, 0, len(files))
	for _, f := range files {
		if _, known := s.known[f.Id]; !known {
			newFiles = append(newFiles, f)
		}
	}
	report.New = len(newFiles)

	if len(newFiles) == 0 {
		s.logger.Info(monitorModule, "No new uploads", map[string]interface{}{"cycle_id": report.CycleID, "listed": report.Listed})
		return report, nil
	}

	for _, f := range newFiles {
		if ctx.Err() != nil {
			s.logger.Info(monitorModule, "Shutdown requested, remaining uploads left for the next run", map[string]interface{}{
				"cycle_id":  report.CycleID,
				"remaining": report.New - report.Processed - report.Failed,
			})
			break
		}

		if err := s.processFile(work, report.CycleID, f); err != nil {
			report.Failed++
			if s.cfg.FailFast {
				return report, err
			}
			s.logger.Error(monitorModule, "Upload not processed, retrying next cycle", map[string]interface{}{
				"cycle_id": report.CycleID,
				"file_id":  f.Id,
				"error":    err,
			})
			continue
		}
		report.Processed++
	}
	return report, nil
}

func (s *monitorService) processFile(ctx context.Context, cycleID string, f drive.RemoteFile) error {
	record, err := s.drive.GetFileMetadata(ctx, f.Id)
	if err != nil {
		return fmt.Errorf("fetch metadata for %s: %w", f.Id, err)
	}

	owner, err := record.Uploader()
	if err != nil {
		return fmt.Errorf("file %s (%s): %w", f.Id, record.Name, err)
	}

	s.logger.Info(monitorModule, "Detected upload", map[string]interface{}{
		"cycle_id":   cycleID,
		"file_id":    record.Id,
		"name":       record.Name,
		"uploader":   owner.Email,
		"owner_name": owner.Name,
		"created":    record.CreatedTime,
		"folders":    strings.Join(record.FolderNames, ", "),
	})

	localPath, err := s.drive.DownloadFile(ctx, record.Id, record.Name, s.downloadDir)
	if err != nil {
		return fmt.Errorf("download %s: %w", record.Id, err)
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read downloaded %s: %w", localPath, err)
	}
	text := strings.ToValidUTF8(string(data), "\uFFFD")

	status, feedback := s.critique.Evaluate(ctx, text, s.scope)
	s.logger.Info(monitorModule, "LLM verdict", map[string]interface{}{"cycle_id": cycleID, "file_id": record.Id, "status": status})

	subject, body, err := s.content.Generate(ctx, record, status, feedback)
	if err != nil {
		return err
	}

	recipients := s.recipientsFor(status, owner)
	attachment := ""
	if status == entity.StatusApproved {
		attachment = localPath
	}
	sent := s.mailer.Send(recipients, subject, body, attachment)

	record.Status = status
	record.Feedback = feedback
	record.Notified = sent
	record.EvaluatedAt = s.now().UTC().Format(time.RFC3339)

	s.known[record.Id] = record
	if err := s.state.Save(ctx, s.known); err != nil {
		delete(s.known, record.Id)
		return fmt.Errorf("commit state for %s: %w", record.Id, err)
	}

	s.logger.Info(monitorModule, "Upload processed", map[string]interface{}{
		"cycle_id": cycleID,
		"file_id":  record.Id,
		"status":   status,
		"notified": sent,
	})
	return nil
}

// recipientsFor sends improvement requests to the uploader and everything else to the
// distribution list.
func (s *monitorService) recipientsFor(status string, uploader entity.Owner) []string {
	if status == entity.StatusNeedsImprovement {
		return nonEmpty([]string{uploader.Email})
	}
	return nonEmpty(s.cfg.NotificationEmails)
}

func nonEmpty(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
