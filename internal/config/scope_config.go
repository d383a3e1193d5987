package config

import (
	"fmt"
	"strings"

	"notes-reviewer/internal/entity"

	"github.com/spf13/viper"
)

// LoadScope reads the learning objectives (JSON or YAML, by extension). Blank objectives are
// dropped. The error is informational: callers keep the returned (possibly empty) scope and
// carry on.
func LoadScope(path string) (entity.ScopeConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return entity.ScopeConfig{}, fmt.Errorf("read scope %s: %w", path, err)
	}

	raw := v.GetStringSlice("learning_objectives")
	objectives := make([]string, 0, len(raw))
	for _, obj := range raw {
		if obj = strings.TrimSpace(obj); obj != "" {
			objectives = append(objectives, obj)
		}
	}
	return entity.ScopeConfig{LearningObjectives: objectives}, nil
}
