package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpoint(t *testing.T) {
	FramesDecoded.WithLabelValues("spot").Inc()

	s := NewServer("127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := s.f.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `contestmon_frames_decoded_total{kind="spot"}`)
}

func TestMetricsUnknownPath(t *testing.T) {
	s := NewServer("127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := s.f.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddress(t *testing.T) {
	s := NewServer("127.0.0.1:9100", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "127.0.0.1:9100", s.Address())
}
