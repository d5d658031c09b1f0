package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := NewStructuredLogger(NewConfig("grocery-test", "0.1.0", "test").
		WithLevel(level).
		WithFormat(FormatJSON).
		WithOutput(buf))
	require.NoError(t, err)
	return logger, buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1])
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestStructuredLogger_RequestIDAndFields(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo)
	ctx := WithRequestID(context.Background(), "req_abc")

	logger.Info(ctx, "quote served", Fields{FieldProduct: "arroz"})

	entry := lastEntry(t, buf)
	assert.Equal(t, "quote served", entry[FieldMessage])
	assert.Equal(t, "req_abc", entry[FieldRequestID])
	assert.Equal(t, "arroz", entry[FieldProduct])
	assert.Equal(t, "grocery-test", entry[FieldService])
	assert.Equal(t, "0.1.0", entry[FieldVersion])
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelWarn)

	logger.Info(context.Background(), "hidden", nil)
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelDebug)
	logger.Debug(context.Background(), "visible", nil)
	assert.Equal(t, "visible", lastEntry(t, buf)[FieldMessage])
	assert.Equal(t, LevelDebug, logger.GetLevel())
}

func TestStructuredLogger_ErrorFieldsDoNotMutateCaller(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo)
	fields := Fields{"slug": "arroz-1-kg"}
	wrapped := fmt.Errorf("fetch: %w", errors.New("connection refused"))

	logger.ErrorWithError(context.Background(), "fetch failed", wrapped, fields)

	entry := lastEntry(t, buf)
	assert.Equal(t, "fetch: connection refused", entry[FieldError])
	assert.Equal(t, "*errors.errorString", entry[FieldErrorType])
	assert.NotContains(t, fields, FieldError)
}

func TestDomainLoggers_TagDomain(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelDebug)
	set := newLoggerSetFrom(logger)

	tests := []struct {
		name   string
		log    func()
		domain string
		level  string
	}{
		{"http 5xx is error", func() { set.HTTP.RequestCompleted(context.Background(), "GET", "/api/v1/prices", 500, 12.5) }, "http", "error"},
		{"http 4xx is warning", func() { set.HTTP.RequestCompleted(context.Background(), "GET", "/api/v1/prices", 400, 1) }, "http", "warning"},
		{"rate limit", func() { set.Security.RateLimitExceeded(context.Background(), "10.0.0.1", "/api/v1/basket") }, "security", "warning"},
		{"cache hit", func() { set.Cache.Hit(context.Background(), "quote:arroz", "get") }, "cache", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.log()
			entry := lastEntry(t, buf)
			assert.Equal(t, tt.domain, entry[FieldDomain])
			assert.Equal(t, tt.level, entry["level"])
		})
	}
}

func TestLoggerConfig_Parsing(t *testing.T) {
	assert.Equal(t, LevelDebug, LogLevelFromString(" DEBUG "))
	assert.Equal(t, LevelWarn, LogLevelFromString("warning"))
	assert.Equal(t, LevelInfo, LogLevelFromString("verbose"))
	assert.Equal(t, FormatText, LogFormatFromString("text"))
	assert.Equal(t, FormatJSON, LogFormatFromString("anything"))
	assert.Equal(t, os.Stderr, OutputFromString("STDERR"))
	assert.Equal(t, os.Stdout, OutputFromString(""))
}

func TestLoggerConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := NewConfig("", "", "")
	assert.Equal(t, ServiceName, cfg.Service)

	tests := []struct {
		name   string
		mutate func(*LoggerConfig)
	}{
		{"level", func(c *LoggerConfig) { c.Level = "TRACE" }},
		{"format", func(c *LoggerConfig) { c.Format = "xml" }},
		{"output", func(c *LoggerConfig) { c.Output = nil }},
		{"service", func(c *LoggerConfig) { c.Service = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

			_, err := NewStructuredLogger(c)
			assert.Error(t, err)
		})
	}
}

func TestRequestIDGenerator(t *testing.T) {
	gen := NewRequestIDGenerator("snap")

	long := gen.Generate()
	short := gen.GenerateShort()

	assert.True(t, strings.HasPrefix(long, "snap_"))
	assert.Len(t, long, len("snap_")+36)
	assert.Len(t, short, len("snap_")+8)
	assert.NotEqual(t, gen.Generate(), long)
	assert.True(t, strings.HasPrefix(NewRequestIDGenerator("").Generate(), "req_"))
}
