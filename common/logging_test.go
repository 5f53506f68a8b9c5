package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger(&LoggingOpts{Service: "addressd", Version: Version})
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))

	debugLogger := SetupLogger(&LoggingOpts{Debug: true, JSON: true})
	assert.True(t, debugLogger.Enabled(context.Background(), slog.LevelDebug))
}
