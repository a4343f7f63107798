package logging

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"docportal/internal/config"
)

// New builds the service logger from config. Components receive it
// explicitly at construction; there is no package-level logger.
func New(cfg config.LoggingConfig) arbor.ILogger {
	logger := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	})
	if cfg.Level != "" {
		logger = logger.WithLevelFromString(cfg.Level)
	}
	return logger
}
