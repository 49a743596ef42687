package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pixelsprint/adforge/pkg/copywriter"
	"github.com/pixelsprint/adforge/pkg/intel"
	"github.com/pixelsprint/adforge/pkg/media"
)

// CopyGenerator writes ad copy for a subject, optionally informed by
// a competitive report.
type CopyGenerator interface {
	Generate(ctx context.Context, subject intel.Subject, report *intel.Report) (copywriter.AdCopy, error)
}

// MediaProducer runs the image (and optionally video) pipeline.
type MediaProducer interface {
	Produce(ctx context.Context, req media.Request) (media.Result, error)
}

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Publisher posts finished copy to a social platform.
type Publisher interface {
	PostTweet(ctx context.Context, text, mediaURL string) (string, error)
}

type Service struct {
	Store      *Store
	Aggregator *intel.Aggregator
	Answer     intel.AnswerFunc
	Copy       CopyGenerator
	Media      MediaProducer
	Translate  Translator
	Publish    Publisher
}

func NewService(store *Store) *Service {
	return &Service{
		Store:      store,
		Aggregator: intel.NewAggregator(),
	}
}

const (
	statusPending   = "pending"
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// Campaign is one end-to-end ad generation run: research, copy, media.
type Campaign struct {
	ID        uuid.UUID          `json:"id"`
	Subject   intel.Subject      `json:"subject"`
	Status    string             `json:"status"`
	Report    *intel.Report      `json:"report,omitempty"`
	AdCopy    *copywriter.AdCopy `json:"ad_copy,omitempty"`
	Media     *media.Result      `json:"media,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Subject intel.Subject `json:"subject"`
	Mode    media.Mode    `json:"mode,omitempty"`
	Aspect  string        `json:"aspect,omitempty"`
	Style   string        `json:"style,omitempty"`
}

type LogEntry struct {
	ID        int             `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata"`
}

func (s *Service) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	if req.Subject.Product == "" {
		return nil, fmt.Errorf("subject.product is required")
	}
	// Fail on a bad aspect before any work is queued.
	if _, err := media.ResolveAspect(req.Aspect); err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &Campaign{
		ID:        uuid.New(),
		Subject:   req.Subject,
		Status:    statusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Store.Put(campaign)

	// Start background worker
	go s.runWorker(campaign.ID, req)

	return campaign, nil
}

func (s *Service) GetCampaign(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	return s.Store.Get(id)
}

func (s *Service) ListCampaigns(ctx context.Context) []Campaign {
	return s.Store.List(50)
}

func (s *Service) GetCampaignLogs(ctx context.Context, id uuid.UUID) []LogEntry {
	return s.Store.Logs(id)
}

func (s *Service) runWorker(id uuid.UUID, req CreateCampaignRequest) {
	ctx := context.Background()

	_ = s.Store.Update(id, func(c *Campaign) { c.Status = statusRunning })

	logger := slog.New(NewMemoryLogHandler(s.Store, id))
	logger.Info("campaign started", "product", req.Subject.Product)

	var report *intel.Report
	if s.Answer != nil {
		// Per-campaign aggregator so the worker log stays with its campaign.
		agg := intel.NewAggregator()
		if s.Aggregator != nil {
			agg.Concurrency = s.Aggregator.Concurrency
		}
		agg.Logger = logger

		report = agg.Research(ctx, req.Subject, s.Answer)
		logger.Info("research finished", "data_quality", report.DataQuality)

		_ = s.Store.Update(id, func(c *Campaign) { c.Report = report })
	}

	if s.Copy != nil {
		adCopy, err := s.Copy.Generate(ctx, req.Subject, report)
		if err != nil {
			s.failCampaign(id, fmt.Sprintf("Copy generation failed: %v", err))
			return
		}
		logger.Info("ad copy ready", "headline", adCopy.Headline)

		_ = s.Store.Update(id, func(c *Campaign) { c.AdCopy = &adCopy })
	}

	if s.Media != nil {
		description := req.Subject.VisualDirection
		if description == "" {
			description = req.Subject.ShortDescription
		}

		result, err := s.Media.Produce(ctx, media.Request{
			Description: description,
			Mode:        req.Mode,
			Aspect:      req.Aspect,
			Style:       req.Style,
		})
		if err != nil {
			s.failCampaign(id, fmt.Sprintf("Media production failed: %v", err))
			return
		}
		logger.Info("media ready", "kind", result.Kind, "url", result.URL)

		_ = s.Store.Update(id, func(c *Campaign) { c.Media = &result })
	}

	_ = s.Store.Update(id, func(c *Campaign) { c.Status = statusCompleted })
	logger.Info("campaign completed")
}

func (s *Service) failCampaign(id uuid.UUID, reason string) {
	// Log the failure
	logger := slog.New(NewMemoryLogHandler(s.Store, id))
	logger.Error(reason)

	_ = s.Store.Update(id, func(c *Campaign) {
		c.Status = statusFailed
		c.Error = reason
	})
}
