package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const completionBody = `{
	"id":"chatcmpl-1",
	"object":"chat.completion",
	"created":1730366400,
	"model":"mistralai/mistral-small-3.2-24b-instruct:free",
	"choices":[
		{
			"index":0,
			"finish_reason":"stop",
			"logprobs":null,
			"message":{
				"role":"assistant",
				"content":"{\"ideas\": []}",
				"tool_calls":[]
			}
		}
	],
	"usage":{
		"prompt_tokens":10,
		"completion_tokens":12,
		"total_tokens":22
	}
}`

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		DefaultModel: "mistral-small",
		Timeout:      5 * time.Second,
		MaxRetries:   1,
		LogLevel:     "error",
		Models: map[string]ModelConfig{
			"mistral-small": {
				Provider:  "mistralai",
				ModelName: "mistral-small-3.2-24b-instruct:free",
			},
		},
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient(nil)
		require.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewClient(&Config{})
		require.Error(t, err)
	})
}

func TestClientChat(t *testing.T) {
	var (
		mu       sync.Mutex
		lastBody []byte
		lastPath string
		lastAuth string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		lastPath = r.URL.Path
		lastAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		lastBody = body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	temp := 0.7
	maxTokens := 2000
	resp, err := client.Chat(ctx, &ChatRequest{
		Messages:    []Message{{Role: "user", Content: "generate ideas"}},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)
	require.Equal(t, `{"ideas": []}`, resp.Text())
	require.Equal(t, 22, resp.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "/chat/completions", lastPath)
	require.Equal(t, "Bearer test-key", lastAuth)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(lastBody, &payload))
	require.Equal(t, "mistralai/mistral-small-3.2-24b-instruct:free", payload["model"])
	require.InDelta(t, 0.7, payload["temperature"].(float64), 0.0001)
	require.EqualValues(t, 2000, payload["max_completion_tokens"])
}

func TestClientChatRetriesServerErrors(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	retry := NewRetryHandler(RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
	})
	client, err := NewClient(cfg, WithHTTPClient(server.Client()), WithRetryHandler(retry))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Text())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, calls)
}

func TestClientChatRequiresMessages(t *testing.T) {
	client, err := NewClient(testConfig("https://example.invalid"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), &ChatRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least one message")

	_, err = client.Chat(context.Background(), nil)
	require.Error(t, err)
}

func TestClientAttributionHeaders(t *testing.T) {
	var (
		mu      sync.Mutex
		referer string
		title   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Referer = "https://ideaforge.example.com"
	cfg.AppName = "IdeaForge"

	client, err := NewClient(cfg, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "https://ideaforge.example.com", referer)
	require.Equal(t, "IdeaForge", title)
}

func TestResponseText(t *testing.T) {
	var nilResp *ChatResponse
	require.Empty(t, nilResp.Text())
	require.Empty(t, (&ChatResponse{}).Text())

	resp := &ChatResponse{Choices: []Choice{{Message: Message{Content: "hello"}}}}
	require.Equal(t, "hello", resp.Text())
}
