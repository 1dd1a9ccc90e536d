package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	anthropicVersion    = "2023-06-01"
	maxTranscriptLength = 100000
	defaultTemperature  = 0.7
)

const systemPrompt = `
Analyze this police dispatch transcript from [Department Name]. Identify and detail all incidents.
Format each incident with:
- Time range
- Units involved
- Nature of call
- Details
- Resolution (if any)
Department terminology:
- RP = Reporting Party
- Victor units = patrol units
- [Add any specific codes/terms for your department]
Include ALL communications and preserve all technical details.`

type messageRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	System      string    `json:"system"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Summarize sends the transcript to the messages endpoint and returns the
// text of the first content block. Transcripts beyond 100,000 characters are
// truncated with a warning before the request is built.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	s.logger.Info(ctx, "Generating summary using Claude model: %s", s.model)

	if len(transcript) > maxTranscriptLength {
		s.logger.Warn(ctx, "Truncating transcript from %d to %d characters", len(transcript), maxTranscriptLength)
		transcript = transcript[:maxTranscriptLength]
	}

	payload := messageRequest{
		Model:     s.model,
		Messages:  []message{{Role: "user", Content: transcript}},
		System:    systemPrompt,
		MaxTokens: s.maxTokens,
	}
	// The default temperature is indistinguishable from an unset one at the
	// wire level: it is only sent when the caller chose a different value.
	if s.temperature != defaultTemperature {
		payload.Temperature = &s.temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode summary payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create summary request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	s.logger.Debug(ctx, "Making API request to Claude with %d characters of transcript", len(transcript))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude api request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error(ctx, "API error: status %d", resp.StatusCode)
		s.logger.Error(ctx, "Response body: %s", string(respBody))
		return "", fmt.Errorf("claude api status %d", resp.StatusCode)
	}

	var parsed messageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode api response: %w", err)
	}

	if len(parsed.Content) == 0 {
		s.logger.Error(ctx, "Unexpected API response structure: %s", truncateForLog(respBody, 500))
		return "", fmt.Errorf("response missing content blocks")
	}

	summary := parsed.Content[0].Text
	s.logger.Info(ctx, "Summary generated. Length: %d characters", len(summary))
	return summary, nil
}

func truncateForLog(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
