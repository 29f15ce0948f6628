package app

import (
	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/logger"
)

// InitializeLogger configures the global logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
