package log

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawaudit/clawaudit/internal/errors"
)

func newBufferLogger(t *testing.T, level Level, format Format) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	cfg.Output = NewOutput(&buf)
	return New(cfg), &buf
}

func TestLogLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelWarn, FormatJSON)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Zero(t, buf.Len(), "debug/info should be filtered at warn level")

	logger.Warn("warn message")
	assert.NotZero(t, buf.Len(), "warn should be logged")

	buf.Reset()
	logger.Error("error message")
	assert.NotZero(t, buf.Len(), "error should be logged")
}

func TestJSONFormatOutput(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)

	logger.Info("test message", "key1", "value1", "key2", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output: %s", buf.String())

	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(42), entry["key2"])
	assert.Equal(t, "clawaudit", entry["service"])
	assert.Contains(t, entry, "time")
}

func TestTextFormatOutput(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo, FormatText)

	logger.Info("test message", "key1", "value1")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "INFO")
}

func TestWithAddsAttributes(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)

	logger.With("run_id", "abc").Info("evaluated")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["run_id"])
}

func TestWithGroup(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)

	logger.WithGroup("probe").Info("stat", "path", "/tmp/x")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	group, ok := entry["probe"].(map[string]interface{})
	require.True(t, ok, "expected probe group, got %v", entry)
	assert.Equal(t, "/tmp/x", group["path"])
}

func TestWithError(t *testing.T) {
	t.Run("audit error", func(t *testing.T) {
		logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)
		err := errors.Wrap(errors.ErrCodeConfigInvalid, "bad config", fmt.Errorf("unexpected EOF")).
			WithSuggestion("fix it")

		logger.WithError(err).Warn("load failed")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "CONFIG-003", entry["error_code"])
		assert.Equal(t, "bad config", entry["error"])
		assert.Equal(t, "unexpected EOF", entry["cause"])
		assert.NotNil(t, entry["suggestions"])
	})

	t.Run("wrapped audit error", func(t *testing.T) {
		logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)
		err := fmt.Errorf("outer: %w", errors.New(errors.ErrCodePostureFailed, "failed"))

		logger.WithError(err).Warn("audit done")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "AUDIT-001", entry["error_code"])
	})

	t.Run("plain error", func(t *testing.T) {
		logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)

		logger.WithError(stderrors.New("boom")).Warn("x")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "boom", entry["error"])
	})

	t.Run("nil error", func(t *testing.T) {
		logger, _ := newBufferLogger(t, LevelInfo, FormatJSON)
		assert.Same(t, logger, logger.WithError(nil))
	})
}

func TestLogError(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo, FormatJSON)

	logger.LogError(errors.NewConfigNotFoundError("/nope.json"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "CONFIG-001", entry["error_code"])
	assert.True(t, strings.Contains(entry["error_message"].(string), "/nope.json"))

	buf.Reset()
	logger.LogError(nil)
	assert.Zero(t, buf.Len())
}

func TestEnabled(t *testing.T) {
	logger, _ := newBufferLogger(t, LevelWarn, FormatText)
	ctx := context.Background()

	assert.False(t, logger.Enabled(ctx, LevelDebug))
	assert.False(t, logger.Enabled(ctx, LevelInfo))
	assert.True(t, logger.Enabled(ctx, LevelWarn))
	assert.True(t, logger.Enabled(ctx, LevelError))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	logger.Error("dropped")
	assert.False(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" warn ", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("logfmt")
	assert.Error(t, err)
}
