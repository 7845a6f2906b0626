package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtlabs/courtroom-sim-api/config"
)

func TestNewSelectsProvider(t *testing.T) {
	p, err := New(&config.Config{LLMProvider: "ollama", OllamaHost: "http://localhost:11434", OllamaModel: "llama2"})
	assert.NoError(t, err)
	assert.Equal(t, ProviderOllama, p.Name())

	p, err = New(&config.Config{LLMProvider: "openai", OpenAIKey: "sk-test", OpenAIModel: "gpt-4o-mini"})
	assert.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p.Name())

	_, err = New(&config.Config{LLMProvider: "openai"})
	assert.ErrorContains(t, err, "api key not provided")

	_, err = New(&config.Config{LLMProvider: "smoke-signals"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 150, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  Objection, your honor.  "}},
			},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "gpt-4o-mini")
	assert.NoError(t, err)
	p.baseURL = srv.URL

	text, err := p.Generate(context.Background(), "prompt", 0)
	assert.NoError(t, err)
	assert.Equal(t, "Objection, your honor.", text)
}

func TestOpenAIProvider_GenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid api key"},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-bad", "gpt-4o-mini")
	assert.NoError(t, err)
	p.baseURL = srv.URL

	text, err := p.Generate(context.Background(), "prompt", 10)
	assert.Empty(t, text)
	assert.ErrorContains(t, err, "invalid api key")
}

func TestOllamaProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 42, req.Options.NumPredict)

		json.NewEncoder(w).Encode(ollamaResponse{Response: "The defense rests.\n"})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")

	text, err := p.Generate(context.Background(), "prompt", 42)
	assert.NoError(t, err)
	assert.Equal(t, "The defense rests.", text)
}

func TestOllamaProvider_GenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")

	text, err := p.Generate(context.Background(), "prompt", 10)
	assert.Empty(t, text)
	assert.ErrorContains(t, err, "status 500")
}

func TestOllamaProvider_GenerateUnreachableHost(t *testing.T) {
	p := NewOllamaProvider("http://127.0.0.1:1", "llama2")

	text, err := p.Generate(context.Background(), "prompt", 10)
	assert.Empty(t, text)
	assert.ErrorContains(t, err, "error communicating with ollama")
}
