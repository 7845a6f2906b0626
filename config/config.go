package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	// Case source selection. CaseSource is either "file" or "mongo";
	// CaseFile is used by the file source, CaseNumber by the mongo source.
	CaseSource string
	CaseFile   string
	CaseNumber string

	// Generation backend selection
	LLMProvider string
	OpenAIKey   string
	OpenAIModel string
	OllamaHost  string
	OllamaModel string

	// Operator credentials for the auth endpoints
	OperatorEmail        string
	OperatorPasswordHash string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("ENV"))
	if err == nil {
		_ = zap.ReplaceGlobals(logger)
	}

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),

		CaseSource: getenv("CASE_SOURCE", "file"),
		CaseFile:   getenv("CASE_FILE", "data/case-001.json"),
		CaseNumber: os.Getenv("CASE_NUMBER"),

		LLMProvider: getenv("LLM_PROVIDER", "ollama"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: getenv("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaHost:  getenv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel: getenv("OLLAMA_MODEL", "llama2"),

		OperatorEmail:        os.Getenv("OPERATOR_EMAIL"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
	}

}

// setLogger selects a zap logger for the given environment
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
