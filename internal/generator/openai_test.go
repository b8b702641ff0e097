package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + content + `}}]}`))
	}))
}

func TestOpenAIClientSend(t *testing.T) {
	server := newChatCompletionServer(t, http.StatusOK, `"[{\"stem\":\"Q1\"}]"`)
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "", server.URL+"/v1")
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, client.ModelID())

	out, err := client.Send(context.Background(), "generate")
	require.NoError(t, err)
	assert.Equal(t, `[{"stem":"Q1"}]`, out)
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	server := newChatCompletionServer(t, http.StatusInternalServerError, "")
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "", server.URL+"/v1")
	require.NoError(t, err)

	_, err = client.Send(context.Background(), "generate")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "openai", upstream.Provider)
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestZAIClientDefaultModel(t *testing.T) {
	client, err := NewZAIClient("test-key", "", "https://api.z.ai/api/paas/v4")
	require.NoError(t, err)
	assert.Equal(t, "glm-4.6", client.ModelID())
}

func TestGeneratorQuestionsEndToEnd(t *testing.T) {
	payload := `"[{\"stem\":\"Q1\",\"choices\":[\"a\",\"b\",\"c\",\"d\"],\"correct_index\":2}]"`
	server := newChatCompletionServer(t, http.StatusOK, payload)
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "", server.URL+"/v1")
	require.NoError(t, err)

	mcqs, err := New(client).Questions(context.Background(), "photosynthesis notes", 1)
	require.NoError(t, err)
	require.Len(t, mcqs, 1)
	assert.Equal(t, 2, mcqs[0].CorrectIndex)
}
