package service

import (
	"context"
	"fmt"
	"time"

	"notes-reviewer/internal/constant"
	"notes-reviewer/internal/entity"
	"notes-reviewer/internal/pkg/logger"
	"notes-reviewer/pkg/llm"
)

const contentTemperature = 0.7

// IEmailContentService writes the notification subject and body for a verdict.
type IEmailContentService interface {
	Generate(ctx context.Context, record *entity.FileRecord, status, feedback string) (subject string, body string, err error)
}

type emailContentService struct {
	provider llm.LLMProvider
	course   string
	week     string
	timeout  time.Duration
	logger   logger.ILogger
}

func NewEmailContentService(provider llm.LLMProvider, course, week string, timeout time.Duration, log logger.ILogger) IEmailContentService {
	return &emailContentService{
		provider: provider,
		course:   course,
		week:     week,
		timeout:  timeout,
		logger:   log,
	}
}

// Generate only fails when the record has no owner to address. A failing provider call is
// logged and the default subject/body are used instead.
func (s *emailContentService) Generate(ctx context.Context, record *entity.FileRecord, status, feedback string) (string, string, error) {
	uploader, err := record.UploaderName()
	if err != nil {
		return "", "", fmt.Errorf("generate email for %s: %w", record.Id, err)
	}

	prompt := fmt.Sprintf(constant.EmailContentPromptV1,
		s.course, s.week, uploader, record.Name, status, feedback, s.course, s.week)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(contentTemperature))
	if err != nil {
		s.logger.Warn("EmailContentService", "Email content generation failed, using defaults", map[string]interface{}{
			"file_id": record.Id,
			"error":   err.Error(),
		})
		raw = ""
	}

	subject, body := ParseEmailContent(raw, s.defaultSubject(record), constant.DefaultEmailBody)
	return subject, body, nil
}

func (s *emailContentService) defaultSubject(record *entity.FileRecord) string {
	return fmt.Sprintf("%s %s: Feedback on %s", s.course, s.week, record.Name)
}
