package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// Translator converts ad copy between languages. A dedicated
// translation API does the work when available; otherwise a Gemini
// structured-output call fills in.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Service tries the primary translator first and falls back to Gemini
// on error or when no primary is configured.
type Service struct {
	Primary Translator
	Client  *genai.Client
	Model   string
	Logger  *slog.Logger
}

func NewService(ctx context.Context, primary Translator) (*Service, error) {
	_ = godotenv.Load()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GOOGLE_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Service{
		Primary: primary,
		Client:  client,
		Model:   "gemini-3-flash-preview",
		Logger:  slog.Default(),
	}, nil
}

// Translate renders text into targetLang (ISO code, e.g. "es").
func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if s.Primary != nil {
		out, err := s.Primary.Translate(ctx, text, targetLang)
		if err == nil {
			return out, nil
		}
		s.Logger.Warn("Primary translator failed, falling back to Gemini", "error", err)
	}
	return s.translateWithGemini(ctx, text, targetLang)
}

func (s *Service) translateWithGemini(ctx context.Context, text, targetLang string) (string, error) {
	if s.Client == nil {
		return "", fmt.Errorf("no translation backend available")
	}

	prompt := fmt.Sprintf("Translate the following ad copy into %s. Preserve tone, line breaks and any hashtags:\n\n%s", targetLang, text)

	returnSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"translation": {
				Type: genai.TypeString,
			},
		},
		Required: []string{"translation"},
	}

	resp, err := s.Client.Models.GenerateContent(ctx, s.Model, []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   returnSchema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini translation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini translation returned no candidates")
	}

	rawJSON := ""
	for _, p := range resp.Candidates[0].Content.Parts {
		rawJSON += p.Text
	}

	var respData struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(rawJSON), &respData); err != nil {
		return "", fmt.Errorf("failed to unmarshal translation response: %w (raw: %s)", err, rawJSON)
	}
	if respData.Translation == "" {
		return "", fmt.Errorf("gemini translation response was empty")
	}
	return respData.Translation, nil
}
