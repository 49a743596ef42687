package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Twitter wraps the X/Twitter v2 tweet-creation endpoint. It only
// posts; auth beyond a bearer token is out of scope here.
type Twitter struct {
	BearerToken string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewTwitter() (*Twitter, error) {
	_ = godotenv.Load()

	token := os.Getenv("TWITTER_BEARER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TWITTER_BEARER_TOKEN is not set")
	}

	return &Twitter{
		BearerToken: token,
		BaseURL:     "https://api.twitter.com",
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// PostTweet publishes text (optionally with a media URL appended) and
// returns the tweet's canonical URL.
func (t *Twitter) PostTweet(ctx context.Context, text, mediaURL string) (string, error) {
	if mediaURL != "" {
		text = text + "\n" + mediaURL
	}

	jsonBody, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/2/tweets", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.BearerToken)

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var parsed tweetResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal tweet response: %w", err)
	}
	return "https://twitter.com/i/web/status/" + parsed.Data.ID, nil
}
