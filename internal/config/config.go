package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	SMTP  SMTPConfig
	Keys  APIKeys
	Ai    AIConfig
	Drive DriveConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	ConfigDir   string
	StateFile   string
	DownloadDir string
}

// SMTPConfig is validated once at load time. Missing lists every absent variable by name and
// PortErr is set when SMTP_PORT is not an integer.
type SMTPConfig struct {
	Server    string
	Port      int
	Username  string
	Password  string
	FromEmail string

	Missing []string
	PortErr error
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider        string // "gemini", "ollama" or "huggingface"
	LLMModel           string
	OllamaBaseURL      string
	HuggingFaceBaseURL string
	Timeout            time.Duration
}

type DriveConfig struct {
	CredentialsFile string
	TokenFile       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", filepath.Join("logs", "monitor.log")),
			ConfigDir:   getEnv("CONFIG_DIR", "config"),
			StateFile:   getEnv("STATE_FILE", filepath.Join("state", "known_files.json")),
			DownloadDir: getEnv("DOWNLOAD_DIR", "downloads"),
		},
		SMTP: loadSMTP(),
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HF_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:           getEnv("LLM_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceBaseURL: getEnv("HF_BASE_URL", ""),
			Timeout:            time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Drive: DriveConfig{
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			TokenFile:       getEnv("GOOGLE_TOKEN_FILE", "token.json"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) MonitorConfigPath() string {
	return filepath.Join(c.App.ConfigDir, "drive_folder.json")
}

func (c *Config) ScopeConfigPath() string {
	return filepath.Join(c.App.ConfigDir, "scope.json")
}

func loadSMTP() SMTPConfig {
	required := []struct {
		key   string
		value string
	}{
		{"SMTP_SERVER", getEnv("SMTP_SERVER", "")},
		{"SMTP_PORT", getEnv("SMTP_PORT", "587")},
		{"SMTP_USER", getEnv("SMTP_USER", "")},
		{"SMTP_PASS", getEnv("SMTP_PASS", "")},
		{"FROM_EMAIL", getEnv("FROM_EMAIL", "")},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}

	cfg := SMTPConfig{
		Server:    required[0].value,
		Username:  required[2].value,
		Password:  required[3].value,
		FromEmail: required[4].value,
		Missing:   missing,
	}

	if port := strings.TrimSpace(required[1].value); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			cfg.PortErr = fmt.Errorf("SMTP_PORT must be an integer, got %q", port)
		} else {
			cfg.Port = p
		}
	}
	return cfg
}

// Ready reports whether every SMTP setting is present and valid.
func (s SMTPConfig) Ready() bool {
	return len(s.Missing) == 0 && s.PortErr == nil
}

// Problems lists one human-readable diagnostic per configuration defect.
func (s SMTPConfig) Problems() []string {
	problems := make([]string, 0, len(s.Missing)+1)
	for _, key := range s.Missing {
		problems = append(problems, fmt.Sprintf("environment variable %s is missing", key))
	}
	if s.PortErr != nil {
		problems = append(problems, s.PortErr.Error())
	}
	return problems
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
