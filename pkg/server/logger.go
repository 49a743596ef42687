package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
)

// MemoryLogHandler is a slog.Handler that appends records to the
// campaign's log in the store, so each campaign carries its own
// worker trace.
type MemoryLogHandler struct {
	Store      *Store
	CampaignID uuid.UUID
}

func NewMemoryLogHandler(store *Store, campaignID uuid.UUID) *MemoryLogHandler {
	return &MemoryLogHandler{
		Store:      store,
		CampaignID: campaignID,
	}
}

func (h *MemoryLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true // Log everything
}

func (h *MemoryLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Extract attributes to JSON
	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	metaJSON, err := json.Marshal(attrs)
	if err != nil {
		// Fallback for marshal error
		metaJSON = []byte("{}")
	}

	h.Store.AppendLog(h.CampaignID, LogEntry{
		Timestamp: r.Time,
		Level:     r.Level.String(),
		Message:   r.Message,
		Metadata:  metaJSON,
	})
	return nil
}

func (h *MemoryLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// For simplicity in this implementation, we won't support WithAttrs fully
	// creating a new handler chain, as we just want the base functionality.
	// A full implementation would merge attributes.
	return h
}

func (h *MemoryLogHandler) WithGroup(name string) slog.Handler {
	return h
}
