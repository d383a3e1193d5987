package bootstrap

import (
	"context"
	"fmt"

	"notes-reviewer/internal/config"
	"notes-reviewer/internal/pkg/logger"
	"notes-reviewer/internal/pkg/mailer"
	"notes-reviewer/internal/repository/contract"
	"notes-reviewer/internal/repository/implementation"
	"notes-reviewer/internal/service"
	"notes-reviewer/pkg/drive"
	"notes-reviewer/pkg/llm"
	"notes-reviewer/pkg/llm/factory"
)

type Container struct {
	Logger          logger.ILogger
	MonitorConfig   *config.MonitorConfig
	StateRepository contract.FileStateRepository
	MonitorService  service.IMonitorService
}

// NewContainer wires every collaborator once. Only a broken monitor config or Drive
// credentials stop startup; scope, LLM and SMTP problems degrade the affected feature.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	monitorCfg, err := config.LoadMonitorConfig(cfg.MonitorConfigPath())
	if err != nil {
		return nil, err
	}

	scope, err := config.LoadScope(cfg.ScopeConfigPath())
	if err != nil {
		sysLogger.Error("Bootstrap", "Error loading scope", map[string]interface{}{"error": err})
	}
	if scope.IsEmpty() {
		sysLogger.Warn("Bootstrap", "No learning objectives configured, every evaluation will return ERROR", nil)
	}

	emailService := mailer.NewEmailService(cfg.SMTP, sysLogger)

	llmProvider := newLLMProvider(ctx, cfg, sysLogger)

	driveSvc, err := drive.NewService(ctx, cfg.Drive.CredentialsFile, cfg.Drive.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("init google drive: %w", err)
	}

	stateRepo := implementation.NewFileStateRepository(cfg.App.StateFile)

	monitorService := service.NewMonitorService(service.MonitorDependencies{
		Drive:       drive.NewClient(driveSvc),
		State:       stateRepo,
		Critique:    service.NewCritiqueService(llmProvider, cfg.Ai.Timeout, sysLogger),
		Content:     service.NewEmailContentService(llmProvider, monitorCfg.Course, monitorCfg.Week, cfg.Ai.Timeout, sysLogger),
		Mailer:      emailService,
		Scope:       scope,
		Monitor:     monitorCfg,
		DownloadDir: cfg.App.DownloadDir,
		Logger:      sysLogger,
	})

	return &Container{
		Logger:          sysLogger,
		MonitorConfig:   monitorCfg,
		StateRepository: stateRepo,
		MonitorService:  monitorService,
	}, nil
}

func newLLMProvider(ctx context.Context, cfg *config.Config, log logger.ILogger) llm.LLMProvider {
	pc := factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
	}
	switch cfg.Ai.LLMProvider {
	case "ollama":
		pc.BaseURL = cfg.Ai.OllamaBaseURL
	case "huggingface":
		pc.APIKey = cfg.Keys.HuggingFace
		pc.BaseURL = cfg.Ai.HuggingFaceBaseURL
	default:
		pc.APIKey = cfg.Keys.GoogleGemini
	}

	provider, err := factory.NewLLMProvider(ctx, pc)
	if err != nil {
		log.Error("Bootstrap", "Failed to initialize LLM provider, evaluations will return ERROR", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err,
		})
		return llm.Unavailable{Err: err}
	}
	log.Info("Bootstrap", fmt.Sprintf("Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel), nil)
	return provider
}
