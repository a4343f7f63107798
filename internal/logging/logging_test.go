package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docportal/internal/config"
)

func TestNew(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "warn"})
	assert.NotNil(t, logger)

	logger.Info().Str("key", "value").Msg("filtered below warn")
	logger.Warn().Msg("emitted")
}

func TestNew_EmptyLevel(t *testing.T) {
	logger := New(config.LoggingConfig{})
	assert.NotNil(t, logger)
	logger.Info().Msg("default level")
}
