package copywriter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/pixelsprint/adforge/pkg/intel"
)

type fakeLLM struct {
	responses []string
	errs      []error
	calls     int
	lastMsgs  []llms.MessageContent
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	idx := f.calls
	f.calls++
	f.lastMsgs = messages
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	content := ""
	if idx < len(f.responses) {
		content = f.responses[idx]
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func testWriter(llm llms.Model) *Writer {
	return &Writer{LLM: llm, Logger: slog.New(slog.DiscardHandler)}
}

func testSubject() intel.Subject {
	return intel.Subject{
		Product:          "iPhone 15 Pro",
		ShortDescription: "Titanium flagship smartphone",
		TargetAudience:   "tech enthusiasts",
		Objective:        "drive preorders",
		BrandVoice:       "confident",
		KeyMessages:      []string{"titanium build", "pro camera"},
	}
}

func TestGenerateParsesValidResponse(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"headline":"Titanium. So Pro.","body":"The new iPhone 15 Pro is here.","call_to_action":"Preorder now","hashtags":["iPhone","Apple"]}`,
	}}
	w := testWriter(llm)

	copyResp, err := w.Generate(context.Background(), testSubject(), nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if copyResp.Headline != "Titanium. So Pro." {
		t.Errorf("headline = %q", copyResp.Headline)
	}
	if copyResp.CallToAction != "Preorder now" {
		t.Errorf("call_to_action = %q", copyResp.CallToAction)
	}
	if len(copyResp.Hashtags) != 2 {
		t.Errorf("hashtags = %v", copyResp.Hashtags)
	}
	if llm.calls != 1 {
		t.Errorf("expected 1 LLM call, got %d", llm.calls)
	}
}

func TestGenerateRetriesOnInvalidJSON(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`not json at all`,
		`{"headline":"Second Try","body":"Body text.","call_to_action":"Buy"}`,
	}}
	w := testWriter(llm)

	copyResp, err := w.Generate(context.Background(), testSubject(), nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if copyResp.Headline != "Second Try" {
		t.Errorf("headline = %q", copyResp.Headline)
	}
	if llm.calls != 2 {
		t.Errorf("expected 2 LLM calls, got %d", llm.calls)
	}
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"headline":"","body":""}`,
		`{"headline":"","body":""}`,
		`{"headline":"","body":""}`,
	}}
	w := testWriter(llm)

	_, err := w.Generate(context.Background(), testSubject(), nil)
	if err == nil {
		t.Fatal("expected error for responses with missing fields")
	}
	if llm.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", llm.calls)
	}
}

func TestGenerateFailsAfterRetries(t *testing.T) {
	callErr := errors.New("rate limited")
	llm := &fakeLLM{errs: []error{callErr, callErr, callErr}}
	w := testWriter(llm)

	_, err := w.Generate(context.Background(), testSubject(), nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "after 3 retries") {
		t.Errorf("error = %v, want retry count mentioned", err)
	}
}

func TestGenerateIncludesInsightsInPrompt(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"headline":"H","body":"B text here.","call_to_action":"Go"}`,
	}}
	w := testWriter(llm)

	report := &intel.Report{
		Summary: &intel.Summary{
			Competitors: []intel.CompetitorProfile{
				{Name: "Samsung Galaxy S24 Ultra", Weaknesses: []string{"heavier chassis than rivals"}},
			},
			MarketGaps: []string{"few compact flagship options"},
		},
	}

	if _, err := w.Generate(context.Background(), testSubject(), report); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var human string
	for _, m := range llm.lastMsgs {
		if m.Role == llms.ChatMessageTypeHuman {
			for _, p := range m.Parts {
				if tp, ok := p.(llms.TextContent); ok {
					human += tp.Text
				}
			}
		}
	}
	if !strings.Contains(human, "heavier chassis than rivals") {
		t.Errorf("prompt missing competitor weakness: %q", human)
	}
	if !strings.Contains(human, "few compact flagship options") {
		t.Errorf("prompt missing market gap: %q", human)
	}
}
