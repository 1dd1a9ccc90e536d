package summarizer

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

const (
	defaultAPIURL  = "https://api.anthropic.com/v1/messages"
	requestTimeout = 10 * time.Minute
)

type implSummarizer struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      logger.Logger
}

// New creates a Summarizer for the Claude messages API. Key validation is
// advisory: a key without the expected prefix logs a warning but the client
// stays usable, so a bad key surfaces as an API error at request time.
func New(apiKey, model string, maxTokens int, temperature float64, log logger.Logger) Summarizer {
	if apiKey == "" || !strings.HasPrefix(apiKey, "sk-ant-") {
		log.Warn(context.Background(), "Claude API key appears to be invalid (should start with 'sk-ant-')")
	} else {
		log.Info(context.Background(), "Claude summarizer initialized with model %s", model)
	}

	return &implSummarizer{
		apiKey:      apiKey,
		apiURL:      defaultAPIURL,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: requestTimeout},
		logger:      log,
	}
}
