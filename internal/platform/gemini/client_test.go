package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hirosato/smartrt/internal/domain/draft"
)

func TestNewGenerator_WithoutKey(t *testing.T) {
	g, err := NewGenerator(context.Background(), "", "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), draft.Prompt{Contents: "halo"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := newClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "test-model")
	require.NoError(t, err)
	return c
}

func TestClient_Generate(t *testing.T) {
	var path string
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Yth. Warga RT 05"}]}}]}`)
	})

	temperature := float32(0.7)
	text, err := c.Generate(context.Background(), draft.Prompt{
		System:      "Anda adalah Ketua RT",
		Contents:    "Buatkan draf pengumuman",
		Temperature: &temperature,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yth. Warga RT 05", text)

	assert.True(t, strings.HasSuffix(path, "models/test-model:generateContent"), path)
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Anda adalah Ketua RT")
	assert.Contains(t, string(raw), "Buatkan draf pengumuman")
}

func TestClient_GenerateError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"bad prompt","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := c.Generate(context.Background(), draft.Prompt{Contents: "halo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generate content")
}
