package push

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"counsel/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExpoClientSendOK(t *testing.T) {
	t.Parallel()

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, time.Second, discardLogger())

	err := client.Send(context.Background(), &service.PushMessage{
		To:    "ExponentPushToken[abc]",
		Title: "Case update",
		Body:  "Your case has a new document",
		Data:  map[string]string{"screen": "case"},
		Badge: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", received["to"])
	assert.Equal(t, "default", received["sound"])
	assert.Equal(t, "Case update", received["title"])
	assert.Equal(t, float64(3), received["badge"])
}

func TestExpoClientSendRejectedTicket(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"status":"error","message":"DeviceNotRegistered"}}`))
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, time.Second, discardLogger())

	err := client.Send(context.Background(), &service.PushMessage{To: "tok", Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DeviceNotRegistered")
}

func TestExpoClientSendServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, time.Second, discardLogger())

	err := client.Send(context.Background(), &service.PushMessage{To: "tok", Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExpoClientSendUndecodableResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, time.Second, discardLogger())

	err := client.Send(context.Background(), &service.PushMessage{To: "tok", Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undecodable")
}

func TestExpoClientOmitsZeroBadge(t *testing.T) {
	t.Parallel()

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"data":{"status":"ok"}}`))
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, time.Second, discardLogger())

	require.NoError(t, client.Send(context.Background(), &service.PushMessage{To: "tok", Title: "t", Body: "b"}))
	_, hasBadge := received["badge"]
	assert.False(t, hasBadge)
}
