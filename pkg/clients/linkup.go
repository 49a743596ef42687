package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pixelsprint/adforge/pkg/intel"
)

// Linkup wraps the Linkup web-search API in sourcedAnswer mode: one
// question in, one synthesized answer with sources out.
type Linkup struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewLinkup() (*Linkup, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("LINKUP_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("LINKUP_API_KEY is not set")
	}

	return &Linkup{
		APIKey:     apiKey,
		BaseURL:    "https://api.linkup.so",
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type linkupSearchResponse struct {
	Answer  string `json:"answer"`
	Sources []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"sources"`
}

// Search asks one question. A transport or HTTP-level error is
// returned as an error; a successful call whose answer carries no
// information comes back as an empty Answer so the aggregator can
// record EMPTY instead of FAILED.
func (l *Linkup) Search(ctx context.Context, query string) (intel.Answer, error) {
	payload := map[string]string{
		"q":          query,
		"depth":      "standard",
		"outputType": "sourcedAnswer",
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return intel.Answer{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/v1/search", bytes.NewBuffer(jsonBody))
	if err != nil {
		return intel.Answer{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.APIKey)

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return intel.Answer{}, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return intel.Answer{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return intel.Answer{}, fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var parsed linkupSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return intel.Answer{}, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	if isNoData(parsed.Answer) {
		return intel.Answer{}, nil
	}

	answer := intel.Answer{Text: parsed.Answer}
	for _, s := range parsed.Sources {
		if s.URL != "" {
			answer.Sources = append(answer.Sources, s.URL)
		}
	}
	return answer, nil
}

// Answer adapts Search to the aggregator's AnswerFunc signature.
func (l *Linkup) Answer(ctx context.Context, q intel.Query) (intel.Answer, error) {
	return l.Search(ctx, q.Question)
}

// isNoData recognizes the provider's explicit "nothing found"
// signals. The exact contract is a blank answer; the phrase check
// covers the documented fallback wording.
func isNoData(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "no results found") || strings.HasPrefix(lower, "no relevant information")
}
