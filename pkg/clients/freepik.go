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
	"github.com/pixelsprint/adforge/pkg/media"
	"github.com/pixelsprint/adforge/pkg/tasks"
)

// Freepik wraps the Freepik generative media API: text-to-image and
// image-to-video submission plus the shared task-status endpoint. It
// satisfies media.Provider.
type Freepik struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewFreepik() (*Freepik, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("FREEPIK_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("FREEPIK_API_KEY is not set")
	}

	return &Freepik{
		APIKey:     apiKey,
		BaseURL:    "https://api.freepik.com",
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

type freepikTaskData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

type freepikResponse struct {
	Data freepikTaskData `json:"data"`
}

// SubmitImage starts a text-to-image task.
func (f *Freepik) SubmitImage(ctx context.Context, req media.ImageRequest) (tasks.Handle, error) {
	payload := map[string]interface{}{
		"prompt":       req.Prompt,
		"num_images":   1,
		"aspect_ratio": req.AspectRatio,
		"styling": map[string]interface{}{
			"style": req.Style,
			"effects": map[string]string{
				"color":    "vibrant",
				"lighting": "studio",
				"framing":  "closeup",
			},
		},
	}

	data, err := f.post(ctx, "/v1/ai/text-to-image/imagen3", payload)
	if err != nil {
		return tasks.Handle{}, err
	}

	return f.toHandle(tasks.KindImage, data), nil
}

// SubmitVideo starts an image-to-video task seeded with a previously
// generated image.
func (f *Freepik) SubmitVideo(ctx context.Context, req media.VideoRequest) (tasks.Handle, error) {
	payload := map[string]interface{}{
		"image":             req.ImageURL,
		"prompt":            req.Prompt,
		"duration":          "5",
		"aspect_ratio":      req.AspectRatio,
		"frames_per_second": 24,
	}

	data, err := f.post(ctx, "/v1/ai/image-to-video/seedance-pro-1080p", payload)
	if err != nil {
		return tasks.Handle{}, err
	}

	return f.toHandle(tasks.KindVideo, data), nil
}

// PollTask fetches the current state of a submitted task. Image and
// video tasks share the status endpoint; only the result field
// differs.
func (f *Freepik) PollTask(ctx context.Context, h tasks.Handle) (tasks.Handle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.BaseURL+"/v1/ai/tasks/"+h.ProviderTaskID, nil)
	if err != nil {
		return tasks.Handle{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("x-freepik-api-key", f.APIKey)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return tasks.Handle{}, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tasks.Handle{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return tasks.Handle{}, fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var parsed freepikResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return tasks.Handle{}, fmt.Errorf("failed to unmarshal task response: %w", err)
	}

	h.Status = mapFreepikStatus(parsed.Data.Status)
	if h.Status == tasks.StatusSucceeded {
		switch h.Kind {
		case tasks.KindVideo:
			h.ResultURL = parsed.Data.Video.URL
		default:
			if len(parsed.Data.Images) > 0 {
				h.ResultURL = parsed.Data.Images[0].URL
			}
		}
	}
	return h, nil
}

func (f *Freepik) post(ctx context.Context, path string, payload map[string]interface{}) (freepikTaskData, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return freepikTaskData{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return freepikTaskData{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-freepik-api-key", f.APIKey)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return freepikTaskData{}, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return freepikTaskData{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return freepikTaskData{}, fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var parsed freepikResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return freepikTaskData{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return parsed.Data, nil
}

func (f *Freepik) toHandle(kind tasks.Kind, data freepikTaskData) tasks.Handle {
	return tasks.Handle{
		ProviderTaskID: data.ID,
		Kind:           kind,
		Status:         mapFreepikStatus(data.Status),
		SubmittedAt:    time.Now().UTC(),
	}
}

func mapFreepikStatus(status string) tasks.Status {
	switch status {
	case "COMPLETED":
		return tasks.StatusSucceeded
	case "FAILED":
		return tasks.StatusFailed
	case "IN_PROGRESS":
		return tasks.StatusRunning
	default:
		return tasks.StatusPending
	}
}
