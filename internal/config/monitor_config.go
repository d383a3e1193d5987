package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultPollIntervalSeconds = 60
	DefaultCourse              = "CS101: Machine Learning"
	DefaultWeek                = "Week 3"
)

// MonitorConfig describes which Drive folder to watch and who hears about approved notes.
type MonitorConfig struct {
	FolderID            string   `mapstructure:"folder_id" validate:"required"`
	PollIntervalSeconds int      `mapstructure:"poll_interval_seconds" validate:"min=1"`
	NotificationEmails  []string `mapstructure:"notification_emails" validate:"dive,email"`
	Course              string   `mapstructure:"course"`
	Week                string   `mapstructure:"week"`
	// FailFast ends the run on the first listing or per-file failure instead of
	// leaving the file for the next cycle.
	FailFast bool `mapstructure:"fail_fast"`
}

func (m *MonitorConfig) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalSeconds) * time.Second
}

// LoadMonitorConfig reads the monitor file (JSON or YAML, by extension) and validates it.
func LoadMonitorConfig(path string) (*MonitorConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("poll_interval_seconds", DefaultPollIntervalSeconds)
	v.SetDefault("notification_emails", []string{})
	v.SetDefault("course", DefaultCourse)
	v.SetDefault("week", DefaultWeek)
	v.SetDefault("fail_fast", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read monitor config %s: %w", path, err)
	}

	var cfg MonitorConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode monitor config %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid monitor config %s: %w", path, err)
	}
	return &cfg, nil
}
