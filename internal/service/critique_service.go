package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notes-reviewer/internal/constant"
	"notes-reviewer/internal/entity"
	"notes-reviewer/internal/pkg/logger"
	"notes-reviewer/pkg/llm"
)

// ICritiqueService grades a document against the rubric. It never fails: provider problems
// come back as an ERROR verdict with the reason as feedback.
type ICritiqueService interface {
	Evaluate(ctx context.Context, text string, scope entity.ScopeConfig) (status string, feedback string)
}

type critiqueService struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewCritiqueService(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) ICritiqueService {
	return &critiqueService{provider: provider, timeout: timeout, logger: log}
}

func (s *critiqueService) Evaluate(ctx context.Context, text string, scope entity.ScopeConfig) (status string, feedback string) {
	if scope.IsEmpty() {
		return entity.StatusError, constant.NoObjectivesFeedback
	}

	defer func() {
		if r := recover(); r != nil {
			status, feedback = entity.StatusError, fmt.Sprintf("Evaluation failed: %v", r)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.provider.Generate(ctx, BuildEvaluationPrompt(text, scope), llm.WithTemperature(0))
	if err != nil {
		s.logger.Error("CritiqueService", "LLM evaluation failed", map[string]interface{}{"error": err})
		return entity.StatusError, fmt.Sprintf("Evaluation failed: %v", err)
	}

	return ClassifyReply(reply)
}

// BuildEvaluationPrompt renders the objectives as a bullet list ahead of the notes.
func BuildEvaluationPrompt(text string, scope entity.ScopeConfig) string {
	bullets := make([]string, len(scope.LearningObjectives))
	for i, obj := range scope.LearningObjectives {
		bullets[i] = "- " + obj
	}
	return fmt.Sprintf(constant.EvaluationPromptV1, strings.Join(bullets, "\n"), text)
}

// ClassifyReply maps a trimmed oracle reply to a verdict; the reply is the feedback.
func ClassifyReply(reply string) (string, string) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, constant.VerdictMarkerApproved) {
		return entity.StatusApproved, reply
	}
	return entity.StatusNeedsImprovement, reply
}
