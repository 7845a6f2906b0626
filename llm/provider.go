package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courtlabs/courtroom-sim-api/config"
)

// ProviderName identifies a supported generation backend.
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
	ProviderOllama ProviderName = "ollama"
)

// Provider produces text for autonomous participant turns. Implementations
// return errors as-is; turning a failure into a visible error utterance is the
// simulation's responsibility.
type Provider interface {
	Name() ProviderName
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ErrUnknownProvider is returned when the configured provider is unsupported.
var ErrUnknownProvider = fmt.Errorf("unknown llm provider")

// DefaultMaxTokens bounds a single generated turn.
const DefaultMaxTokens = 150

// generation calls are expected to complete or fail in bounded time
const requestTimeout = 60 * time.Second

// New builds a Provider from configuration.
func New(conf *config.Config) (Provider, error) {
	switch strings.ToLower(conf.LLMProvider) {
	case string(ProviderOpenAI):
		return NewOpenAIProvider(conf.OpenAIKey, conf.OpenAIModel)
	case string(ProviderOllama), "":
		return NewOllamaProvider(conf.OllamaHost, conf.OllamaModel), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, conf.LLMProvider)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
