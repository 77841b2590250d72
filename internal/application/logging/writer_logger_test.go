package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

var logTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestWriterLogger_TextFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, "debug", "text", shared.NewMockClock(logTime)).WithScope("supply-ranking-abcd1234")

	// Act
	logger.Log(logging.LevelInfo, "Query finished", map[string]interface{}{"state": "READY", "results": 3})

	// Assert
	assert.Equal(t, "[2024-05-01T09:30:00Z] [supply-ranking-abcd1234] INFO: Query finished results=3 state=READY\n", buf.String())
}

func TestWriterLogger_DropsBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, "warn", "text", shared.NewMockClock(logTime))

	logger.Log(logging.LevelDebug, "noise", nil)
	logger.Log(logging.LevelInfo, "noise", nil)
	logger.Log(logging.LevelWarn, "kept", nil)
	logger.Log(logging.LevelError, "kept", nil)

	assert.Equal(t, 2, strings.Count(buf.String(), "kept"))
	assert.NotContains(t, buf.String(), "noise")
}

func TestWriterLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, "info", "json", shared.NewMockClock(logTime))

	logger.Log("warn", "Skipping malformed auction", map[string]interface{}{"uuid": "a1"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "Skipping malformed auction", line["message"])
	assert.Equal(t, map[string]interface{}{"uuid": "a1"}, line["metadata"])
	assert.NotContains(t, line, "scope")
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log(logging.LevelInfo, "dropped", nil) })
}
