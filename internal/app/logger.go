package app

import (
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// NewLogger logs to cfg.LogFile when set, to stderr otherwise.
func NewLogger(cfg *config.Config) logger.Logger {
	if cfg.LogFile != "" {
		return logger.NewFile(cfg.LogLevel, cfg.LogFile)
	}
	return logger.New(cfg.LogLevel, cfg.PrettyLog)
}
