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
)

// DeepL wraps the DeepL translation API.
type DeepL struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewDeepL() (*DeepL, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("DEEPL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPL_API_KEY is not set")
	}

	return &DeepL{
		APIKey:     apiKey,
		BaseURL:    "https://api-free.deepl.com",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate renders text into the target language (ISO code, e.g.
// "es").
func (d *DeepL) Translate(ctx context.Context, text, targetLang string) (string, error) {
	payload := map[string]interface{}{
		"text":        []string{text},
		"target_lang": strings.ToUpper(targetLang),
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+"/v2/translate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.APIKey)

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var parsed deeplResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal translation response: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("translation response contained no translations")
	}
	return parsed.Translations[0].Text, nil
}
