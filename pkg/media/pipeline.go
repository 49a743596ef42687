package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixelsprint/adforge/pkg/tasks"
)

// Mode selects how much of the pipeline runs.
type Mode string

const (
	ModeImage         Mode = "IMAGE"
	ModeImageAndVideo Mode = "IMAGE_AND_VIDEO"
)

// Request describes one media production run.
type Request struct {
	Description string
	Mode        Mode
	// Aspect is a named preset (see ResolveAspect); empty defaults to
	// widescreen. An unknown preset fails before any network call.
	Aspect string
	// Style is passed through to the provider unchanged.
	Style string
}

// Result is what the pipeline hands back to the caller. For
// image+video mode the URL is the video URL.
type Result struct {
	Kind tasks.Kind `json:"kind"`
	URL  string     `json:"url,omitempty"`
}

// ImageRequest is the image-stage submission payload.
type ImageRequest struct {
	Prompt      string
	AspectRatio string
	Style       string
}

// VideoRequest is the video-stage submission payload. ImageURL is the
// sole input carried over from the image stage.
type VideoRequest struct {
	ImageURL    string
	Prompt      string
	AspectRatio string
}

// Provider is the pair of submit/poll capabilities the pipeline needs
// from a generative media backend. Image and video payloads differ at
// the wire level; the poll shape is shared.
type Provider interface {
	SubmitImage(ctx context.Context, req ImageRequest) (tasks.Handle, error)
	SubmitVideo(ctx context.Context, req VideoRequest) (tasks.Handle, error)
	PollTask(ctx context.Context, h tasks.Handle) (tasks.Handle, error)
}

// Default policies. Video synthesis is substantially slower than image
// generation, so it gets a longer interval and a bigger budget.
var (
	DefaultImagePolicy = tasks.Policy{Interval: 3 * time.Second, MaxAttempts: 10}
	DefaultVideoPolicy = tasks.Policy{Interval: 5 * time.Second, MaxAttempts: 30}
)

// Pipeline composes an image generation run and, in image+video mode,
// an image-to-video run seeded with the image result. It retains no
// state across invocations.
type Pipeline struct {
	Provider    Provider
	Executor    *tasks.Executor
	ImagePolicy tasks.Policy
	VideoPolicy tasks.Policy
	Logger      *slog.Logger
}

func NewPipeline(provider Provider) *Pipeline {
	return &Pipeline{
		Provider:    provider,
		Executor:    tasks.NewExecutor(),
		ImagePolicy: DefaultImagePolicy,
		VideoPolicy: DefaultVideoPolicy,
		Logger:      slog.Default(),
	}
}

// Produce runs the pipeline. The image stage always runs first; the
// video stage is never attempted without a successful base image.
func (p *Pipeline) Produce(ctx context.Context, req Request) (Result, error) {
	ratio, err := ResolveAspect(req.Aspect)
	if err != nil {
		return Result{}, err
	}
	if req.Mode == "" {
		req.Mode = ModeImage
	}

	p.Logger.Info("producing media",
		"mode", req.Mode,
		"aspect_ratio", ratio,
		"style", req.Style)

	imageHandle, err := p.Executor.Run(ctx,
		func(ctx context.Context) (tasks.Handle, error) {
			return p.Provider.SubmitImage(ctx, ImageRequest{
				Prompt:      req.Description,
				AspectRatio: ratio,
				Style:       req.Style,
			})
		},
		p.Provider.PollTask,
		p.ImagePolicy)
	if err != nil {
		return Result{}, fmt.Errorf("image stage: %w", err)
	}

	if req.Mode != ModeImageAndVideo {
		return Result{Kind: tasks.KindImage, URL: imageHandle.ResultURL}, nil
	}

	p.Logger.Info("image ready, starting video stage", "image_url", imageHandle.ResultURL)

	videoHandle, err := p.Executor.Run(ctx,
		func(ctx context.Context) (tasks.Handle, error) {
			return p.Provider.SubmitVideo(ctx, VideoRequest{
				ImageURL:    imageHandle.ResultURL,
				Prompt:      req.Description,
				AspectRatio: ratio,
			})
		},
		p.Provider.PollTask,
		p.VideoPolicy)
	if err != nil {
		return Result{}, fmt.Errorf("video stage: %w", err)
	}

	return Result{Kind: tasks.KindVideo, URL: videoHandle.ResultURL}, nil
}
