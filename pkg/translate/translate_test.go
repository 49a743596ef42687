package translate

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

type fakePrimary struct {
	out   string
	err   error
	calls int
	lang  string
}

func (f *fakePrimary) Translate(ctx context.Context, text, targetLang string) (string, error) {
	f.calls++
	f.lang = targetLang
	return f.out, f.err
}

func TestTranslatePrefersPrimary(t *testing.T) {
	primary := &fakePrimary{out: "Hola mundo"}
	s := &Service{Primary: primary, Logger: slog.New(slog.DiscardHandler)}

	out, err := s.Translate(context.Background(), "Hello world", "es")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if out != "Hola mundo" {
		t.Errorf("translation = %q", out)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
	if primary.lang != "es" {
		t.Errorf("target lang = %q, want es", primary.lang)
	}
}

func TestTranslateFallsBackOnPrimaryError(t *testing.T) {
	primary := &fakePrimary{err: errors.New("quota exceeded")}
	s := &Service{Primary: primary, Logger: slog.New(slog.DiscardHandler)}

	// No Gemini client configured: the fallback itself fails, but the
	// primary error must not be returned as-is.
	_, err := s.Translate(context.Background(), "Hello", "de")
	if err == nil {
		t.Fatal("expected error when both translators are unavailable")
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
}
