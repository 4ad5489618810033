package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainHandler(buf *bytes.Buffer, level slog.Level) *PrettyHandler {
	h := NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})
	h.noColor = true
	return h
}

func TestNew_JSONWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.Info("item added", "item_id", "item-1")

	assert.Contains(t, buf.String(), `"msg":"item added"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"item_id":"item-1"`)
}

func TestNew_FormatFromEnvironment(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: slog.LevelInfo, Environment: tt.environment, Writer: &buf, NoColor: true})
			log.Info("ready")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"ready"`)
			} else {
				assert.Contains(t, buf.String(), "INF ready")
			}
		})
	}
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Environment: "development", Writer: &buf})
	log.Info("ready")

	assert.Contains(t, buf.String(), `"msg":"ready"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := plainHandler(&buf, slog.LevelInfo)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	slog.New(plainHandler(&buf, slog.LevelInfo)).Info("plan saved", "date", "2024-06-03", "items", 3)

	out := buf.String()
	assert.Contains(t, out, "INF plan saved")
	assert.Contains(t, out, "date=2024-06-03")
	assert.Contains(t, out, "items=3")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_QuotesSpacedStrings(t *testing.T) {
	var buf bytes.Buffer
	slog.New(plainHandler(&buf, slog.LevelInfo)).Info("item added", "name", "Linen shirt")

	assert.Contains(t, buf.String(), `name="Linen shirt"`)
}

func TestPrettyHandler_LevelFormatting(t *testing.T) {
	for _, tt := range []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	} {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			slog.New(plainHandler(&buf, slog.LevelDebug)).Log(context.Background(), tt.level, "x")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(plainHandler(&buf, slog.LevelInfo)).
		With("component", "store").
		WithGroup("plan").
		With("id", "plan-1")

	log.Info("pruned", "remaining", 2, slog.Group("item", "id", "item-9"))

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "plan.id=plan-1")
	assert.Contains(t, out, "plan.remaining=2")
	assert.Contains(t, out, "plan.item.id=item-9")
}

func TestPrettyHandler_EmptyGroupIsSameHandler(t *testing.T) {
	var buf bytes.Buffer
	h := plainHandler(&buf, slog.LevelInfo)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true})
	slog.New(h).Info("test message")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestPrettyHandler_ConcurrentWritesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(plainHandler(&buf, slog.LevelInfo))

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			log.Info("tick", "n", 1)
		})
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "INF tick n=1")
	}
}

func TestFormatValue(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "test", formatValue(slog.StringValue("test")))
	assert.Equal(t, "2024-06-03T09:30:00Z", formatValue(slog.TimeValue(now)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithError(errors.New("disk full")).Warn("persist failed")

	assert.Contains(t, buf.String(), `"error":"disk full"`)
}
