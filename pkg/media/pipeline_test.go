package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixelsprint/adforge/pkg/tasks"
)

// fakeProvider scripts image and video stage behavior and counts
// submissions.
type fakeProvider struct {
	imageSubmits int
	videoSubmits int

	imageSubmitErr error
	imageStatus    tasks.Status
	imageURL       string

	videoStatus tasks.Status
	videoURL    string

	lastVideoReq VideoRequest
}

func (f *fakeProvider) SubmitImage(ctx context.Context, req ImageRequest) (tasks.Handle, error) {
	f.imageSubmits++
	if f.imageSubmitErr != nil {
		return tasks.Handle{}, f.imageSubmitErr
	}
	return tasks.Handle{ProviderTaskID: "img-1", Kind: tasks.KindImage, Status: tasks.StatusPending}, nil
}

func (f *fakeProvider) SubmitVideo(ctx context.Context, req VideoRequest) (tasks.Handle, error) {
	f.videoSubmits++
	f.lastVideoReq = req
	return tasks.Handle{ProviderTaskID: "vid-1", Kind: tasks.KindVideo, Status: tasks.StatusPending}, nil
}

func (f *fakeProvider) PollTask(ctx context.Context, h tasks.Handle) (tasks.Handle, error) {
	switch h.Kind {
	case tasks.KindImage:
		h.Status = f.imageStatus
		h.ResultURL = f.imageURL
	case tasks.KindVideo:
		h.Status = f.videoStatus
		h.ResultURL = f.videoURL
	}
	return h, nil
}

func testPipeline(p Provider) *Pipeline {
	pl := NewPipeline(p)
	pl.ImagePolicy = tasks.Policy{Interval: time.Millisecond, MaxAttempts: 3}
	pl.VideoPolicy = tasks.Policy{Interval: time.Millisecond, MaxAttempts: 3}
	return pl
}

func TestResolveAspect(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		want    string
		wantErr bool
	}{
		{"widescreen", "widescreen", "widescreen_16_9", false},
		{"square", "square", "square_1_1", false},
		{"story", "story", "social_story_9_16", false},
		{"traditional", "traditional", "traditional_3_4", false},
		{"empty defaults to widescreen", "", "widescreen_16_9", false},
		{"unknown preset", "cinemascope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAspect(tt.preset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveAspect(%q) error = %v, wantErr %v", tt.preset, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("error %v is not ErrConfiguration", err)
			}
			if got != tt.want {
				t.Errorf("ResolveAspect(%q) = %q, want %q", tt.preset, got, tt.want)
			}
		})
	}
}

func TestProduceRejectsUnknownAspectBeforeSubmitting(t *testing.T) {
	provider := &fakeProvider{}
	_, err := testPipeline(provider).Produce(context.Background(), Request{
		Description: "eco-friendly water bottle",
		Mode:        ModeImage,
		Aspect:      "panoramic",
	})

	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if provider.imageSubmits != 0 {
		t.Errorf("image submitted %d times despite invalid config, want 0", provider.imageSubmits)
	}
}

func TestProduceImageOnly(t *testing.T) {
	provider := &fakeProvider{
		imageStatus: tasks.StatusSucceeded,
		imageURL:    "https://cdn.example.com/img.png",
	}

	res, err := testPipeline(provider).Produce(context.Background(), Request{
		Description: "iPhone 15 Pro titanium",
		Mode:        ModeImage,
		Aspect:      "square",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != tasks.KindImage || res.URL != "https://cdn.example.com/img.png" {
		t.Errorf("got %+v, want image result with provider URL", res)
	}
	if provider.videoSubmits != 0 {
		t.Errorf("video submitted in image-only mode")
	}
}

func TestProduceVideoNeverRunsWhenImageFails(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		wantErr  error
	}{
		{
			name:     "image submission rejected",
			provider: &fakeProvider{imageSubmitErr: errors.New("402 payment required")},
			wantErr:  tasks.ErrSubmissionFailed,
		},
		{
			name:     "image task failed",
			provider: &fakeProvider{imageStatus: tasks.StatusFailed},
			wantErr:  tasks.ErrTaskFailed,
		},
		{
			name:     "image task never finished",
			provider: &fakeProvider{imageStatus: tasks.StatusRunning},
			wantErr:  tasks.ErrTimedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testPipeline(tt.provider).Produce(context.Background(), Request{
				Description: "luxury sports car",
				Mode:        ModeImageAndVideo,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if tt.provider.videoSubmits != 0 {
				t.Errorf("video submitted %d times after image failure, want 0", tt.provider.videoSubmits)
			}
		})
	}
}

func TestProduceFeedsImageURLIntoVideoStage(t *testing.T) {
	provider := &fakeProvider{
		imageStatus: tasks.StatusSucceeded,
		imageURL:    "https://cdn.example.com/base.png",
		videoStatus: tasks.StatusSucceeded,
		videoURL:    "https://cdn.example.com/clip.mp4",
	}

	res, err := testPipeline(provider).Produce(context.Background(), Request{
		Description: "eco-friendly water bottle",
		Mode:        ModeImageAndVideo,
		Aspect:      "widescreen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != tasks.KindVideo || res.URL != "https://cdn.example.com/clip.mp4" {
		t.Errorf("got %+v, want video result", res)
	}
	if provider.lastVideoReq.ImageURL != "https://cdn.example.com/base.png" {
		t.Errorf("video stage input = %q, want the image stage URL", provider.lastVideoReq.ImageURL)
	}
	if provider.imageSubmits != 1 || provider.videoSubmits != 1 {
		t.Errorf("submits = %d image / %d video, want 1/1", provider.imageSubmits, provider.videoSubmits)
	}
}
