package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsContextIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		ServiceInfo:   ServiceInfo{Name: "reminder-scheduler", Version: "test"},
		Environment:   EnvProd,
		Level:         slog.LevelInfo,
		DefaultModule: Module("reminder"),
		Output:        &buf,
	})

	ctx := WithPassID(WithRequestID(context.Background(), "req-1"), "pass-1")
	logger.InfoContext(ctx, "pass finished")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pass finished", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "pass-1", line["pass_id"])
	assert.Equal(t, "reminder", line["module"])
	assert.Equal(t, "prod", line["env"])
}

func TestNewLogger_ModuleOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Environment: EnvProd, DefaultModule: Module("reminder"), Output: &buf})

	logger.InfoContext(WithModule(context.Background(), Module("retention")), "purged")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "retention", line["module"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Environment: EnvProd, Level: slog.LevelWarn, Output: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := "3f1c8c6e-2b1a-4d4e-9d6f-0a1b2c3d4e5f"
	assert.Equal(t, valid, ValidateAndExtractRequestID(valid))

	generated := ValidateAndExtractRequestID("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", generated)
	assert.Len(t, generated, 36)
}
