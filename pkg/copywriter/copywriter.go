package copywriter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/pixelsprint/adforge/pkg/intel"
)

// AdCopy is one generated ad, structured so the UI can lay the pieces
// out separately.
type AdCopy struct {
	Headline     string   `json:"headline"`
	Body         string   `json:"body"`
	CallToAction string   `json:"call_to_action"`
	Hashtags     []string `json:"hashtags,omitempty"`
}

// Writer generates ad copy from a subject plus whatever competitive
// intelligence is available.
type Writer struct {
	LLM    llms.Model
	Logger *slog.Logger
}

func New(llm llms.Model) *Writer {
	return &Writer{LLM: llm, Logger: slog.Default()}
}

const systemPrompt = `You are a senior advertising copywriter.
Write one social media ad for the product described by the user.
Match the requested brand voice, speak to the stated target audience,
and lean on the competitive insights when they are provided.`

func adCopySchema() string {
	return `Return the JSON object directly without any formatting or additional text. The JSON object should have the following structure as defined in the schema. Make sure to answer in valid json and include all necessary properties:{
  "type": "object",
  "properties": {
    "headline": {"type": "string", "description": "Attention-grabbing headline, max 10 words"},
    "body": {"type": "string", "description": "2-4 sentence ad body"},
    "call_to_action": {"type": "string", "description": "Short imperative CTA"},
    "hashtags": {"type": "array", "items": {"type": "string"}, "description": "3-5 hashtags without the # prefix"}
  },
  "required": ["headline", "body", "call_to_action"]
}`
}

// Generate produces ad copy for the subject. The report is optional;
// when present, its summary feeds the prompt.
func (w *Writer) Generate(ctx context.Context, subject intel.Subject, report *intel.Report) (AdCopy, error) {
	input := buildInput(subject, report)

	var copyResp AdCopy
	_, err := w.generateWithRetry(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt+"\n\n# Response Format: \n\n"+adCopySchema()),
		llms.TextParts(llms.ChatMessageTypeHuman, input),
	}, func(content string) error {
		// Reset for retry
		copyResp = AdCopy{}

		if err := json.Unmarshal([]byte(content), &copyResp); err != nil {
			return fmt.Errorf("json parse error: %w (content: %s)", err, content)
		}
		if copyResp.Headline == "" || copyResp.Body == "" {
			return fmt.Errorf("missing headline or body")
		}
		return nil
	})
	if err != nil {
		return AdCopy{}, err
	}

	w.Logger.Info("ad copy generated", "headline", copyResp.Headline)
	return copyResp, nil
}

// generateWithRetry attempts to generate content and validates it
// using the provided function. It retries up to 3 times if the LLM
// fails or the validator returns an error.
func (w *Writer) generateWithRetry(ctx context.Context, prompts []llms.MessageContent, validator func(string) error) (string, error) {
	maxRetries := 3
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			w.Logger.Warn("Retrying LLM generation", "attempt", i+1, "last_error", lastErr)
			time.Sleep(time.Second * time.Duration(i)) // Linear backoff
		}

		resp, err := w.LLM.GenerateContent(ctx, prompts, llms.WithJSONMode())
		if err != nil {
			lastErr = fmt.Errorf("llm generation failed: %w", err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("llm returned no choices")
			continue
		}

		content := resp.Choices[0].Content
		if err := validator(content); err != nil {
			lastErr = fmt.Errorf("validation failed: %w", err)
			continue
		}

		return content, nil
	}

	return "", fmt.Errorf("operation failed after %d retries: %w", maxRetries, lastErr)
}

func buildInput(subject intel.Subject, report *intel.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Product: %s\nDescription: %s\nTarget Audience: %s\nObjective: %s\n",
		subject.Product, subject.ShortDescription, subject.TargetAudience, subject.Objective)
	if subject.BrandVoice != "" {
		fmt.Fprintf(&b, "Brand Voice: %s\n", subject.BrandVoice)
	}
	if len(subject.KeyMessages) > 0 {
		fmt.Fprintf(&b, "Key Messages: %s\n", strings.Join(subject.KeyMessages, ", "))
	}
	if subject.Price != "" {
		fmt.Fprintf(&b, "Price: %s\n", subject.Price)
	}
	if len(subject.Platforms) > 0 {
		fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(subject.Platforms, ", "))
	}
	if subject.Constraints != "" {
		fmt.Fprintf(&b, "Constraints: %s\n", subject.Constraints)
	}

	if report != nil && report.Summary != nil {
		b.WriteString("\nCompetitive insights:\n")
		for _, c := range report.Summary.Competitors {
			if len(c.Weaknesses) > 0 {
				fmt.Fprintf(&b, "- %s weaknesses: %s\n", c.Name, strings.Join(c.Weaknesses, "; "))
			}
		}
		if len(report.Summary.MarketGaps) > 0 {
			fmt.Fprintf(&b, "- Market gaps: %s\n", strings.Join(report.Summary.MarketGaps, "; "))
		}
	}

	return b.String()
}
