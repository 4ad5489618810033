package response

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSuccess_Marshal(t *testing.T) {
	data, err := json.Marshal(Success(map[string]string{"id": "item-1"}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(EnvelopeVersion), decoded["v"])
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, map[string]any{"id": "item-1"}, decoded["data"])
	assert.NotContains(t, decoded, "error")
}

func TestFailure_Marshal(t *testing.T) {
	data, err := json.Marshal(Failure("VALIDATION", "validation failed", map[string]string{"name": "is required"}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "VALIDATION", decoded["code"])
	assert.Equal(t, "validation failed", decoded["message"])
	assert.Equal(t, map[string]any{"name": "is required"}, decoded["details"])
}

func TestJSON_WritesStatusAndContentType(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, Success("ok"), discardLogger())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "ok", result.Data)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		code   string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no route", discardLogger()) }, http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", func(w http.ResponseWriter) { MethodNotAllowed(w, "nope", discardLogger()) }, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"too many requests", func(w http.ResponseWriter) { TooManyRequests(w, "slow down", nil) }, http.StatusTooManyRequests, "RATE_LIMITED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)

			var result ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.False(t, result.Success)
			assert.Equal(t, tt.code, result.Code)
			assert.Equal(t, EnvelopeVersion, result.Version)
		})
	}
}
