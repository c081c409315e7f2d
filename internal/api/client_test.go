package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeBody(t *testing.T, data any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"data":      data,
		"success":   true,
		"timestamp": time.Now().UTC(),
	})
	require.NoError(t, err)
	return payload
}

func TestClient_Get_decodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/trains", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(t, []map[string]any{{"id": "train-1"}, {"id": "train-2"}}))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))

	var out []struct {
		ID string `json:"id"`
	}
	// Leading slash is optional.
	err := client.Get(context.Background(), "trains", &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "train-1", out[0].ID)
}

func TestClient_Post_sendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sess-1", body["sessionId"])
		_, _ = w.Write(envelopeBody(t, map[string]string{"id": "audit-1"}))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))

	var out struct {
		ID string `json:"id"`
	}
	err := client.Post(context.Background(), "/chat", map[string]string{"sessionId": "sess-1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "audit-1", out.ID)
}

func TestClient_Do_callerHeadersWin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.trackside+json", r.Header.Get("Content-Type"))
		_, _ = w.Write(envelopeBody(t, nil))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))

	header := http.Header{}
	header.Set("Content-Type", "application/vnd.trackside+json")
	err := client.Do(context.Background(), http.MethodPost, "/simulate", map[string]string{}, nil, header)
	require.NoError(t, err)
}

func TestClient_non2xxBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   false,
			"error":     "optimizer offline",
			"code":      "optimizer_offline",
			"timestamp": time.Now().UTC(),
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))

	err := client.Get(context.Background(), "/recommendations", &[]any{})
	require.Error(t, err)

	var transportErr *api.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
	assert.Equal(t, "optimizer_offline", transportErr.Code)
	assert.Equal(t, "optimizer offline", transportErr.Message)
}

func TestClient_networkFailureBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refuse connections

	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))

	err := client.Get(context.Background(), "/trains", &[]any{})
	require.Error(t, err)

	var transportErr *api.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}
