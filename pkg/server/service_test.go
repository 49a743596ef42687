package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pixelsprint/adforge/pkg/copywriter"
	"github.com/pixelsprint/adforge/pkg/intel"
	"github.com/pixelsprint/adforge/pkg/media"
)

type fakeCopy struct {
	copy  copywriter.AdCopy
	err   error
	calls int
}

func (f *fakeCopy) Generate(ctx context.Context, subject intel.Subject, report *intel.Report) (copywriter.AdCopy, error) {
	f.calls++
	return f.copy, f.err
}

type fakeMedia struct {
	result media.Result
	err    error
	calls  int
}

func (f *fakeMedia) Produce(ctx context.Context, req media.Request) (media.Result, error) {
	f.calls++
	return f.result, f.err
}

func testSubject() intel.Subject {
	return intel.Subject{
		Product:          "iPhone 15 Pro",
		ShortDescription: "Titanium flagship smartphone",
		TargetAudience:   "tech enthusiasts",
		Objective:        "drive preorders",
	}
}

func waitForTerminal(t *testing.T, s *Service, id uuid.UUID) *Campaign {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		c, err := s.GetCampaign(context.Background(), id)
		if err != nil {
			t.Fatalf("GetCampaign: %v", err)
		}
		if c.Status == statusCompleted || c.Status == statusFailed {
			return c
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("campaign never reached a terminal status")
	return nil
}

func TestCreateCampaignRunsFullWorkflow(t *testing.T) {
	copyGen := &fakeCopy{copy: copywriter.AdCopy{Headline: "H", Body: "B", CallToAction: "Go"}}
	mediaGen := &fakeMedia{result: media.Result{URL: "https://cdn.example.com/ad.png"}}

	svc := NewService(NewStore())
	svc.Answer = func(ctx context.Context, q intel.Query) (intel.Answer, error) {
		return intel.Answer{Text: "a sufficiently detailed answer about the market"}, nil
	}
	svc.Copy = copyGen
	svc.Media = mediaGen

	created, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		Subject: testSubject(),
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	if created.Status != statusPending {
		t.Errorf("initial status = %q, want pending", created.Status)
	}

	final := waitForTerminal(t, svc, created.ID)
	if final.Status != statusCompleted {
		t.Fatalf("status = %q (error: %s), want completed", final.Status, final.Error)
	}
	if final.Report == nil {
		t.Error("report missing on completed campaign")
	}
	if final.AdCopy == nil || final.AdCopy.Headline != "H" {
		t.Errorf("ad copy = %+v", final.AdCopy)
	}
	if final.Media == nil || final.Media.URL != "https://cdn.example.com/ad.png" {
		t.Errorf("media = %+v", final.Media)
	}
	if copyGen.calls != 1 || mediaGen.calls != 1 {
		t.Errorf("calls: copy=%d media=%d", copyGen.calls, mediaGen.calls)
	}

	logs := svc.GetCampaignLogs(context.Background(), created.ID)
	if len(logs) == 0 {
		t.Error("expected worker logs for completed campaign")
	}
}

func TestCreateCampaignRejectsUnknownAspect(t *testing.T) {
	svc := NewService(NewStore())

	_, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		Subject: testSubject(),
		Aspect:  "circular",
	})
	if !errors.Is(err, media.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
	if got := len(svc.ListCampaigns(context.Background())); got != 0 {
		t.Errorf("campaigns stored = %d, want 0", got)
	}
}

func TestCreateCampaignRequiresProduct(t *testing.T) {
	svc := NewService(NewStore())

	_, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{})
	if err == nil {
		t.Fatal("expected error for missing product")
	}
}

func TestCopyFailureFailsCampaignAndSkipsMedia(t *testing.T) {
	copyGen := &fakeCopy{err: errors.New("model unavailable")}
	mediaGen := &fakeMedia{}

	svc := NewService(NewStore())
	svc.Copy = copyGen
	svc.Media = mediaGen

	created, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		Subject: testSubject(),
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}

	final := waitForTerminal(t, svc, created.ID)
	if final.Status != statusFailed {
		t.Fatalf("status = %q, want failed", final.Status)
	}
	if final.Error == "" {
		t.Error("failed campaign should record a reason")
	}
	if mediaGen.calls != 0 {
		t.Errorf("media produced %d times after copy failure, want 0", mediaGen.calls)
	}
}

func TestMediaFailureFailsCampaignButKeepsCopy(t *testing.T) {
	copyGen := &fakeCopy{copy: copywriter.AdCopy{Headline: "H", Body: "B", CallToAction: "Go"}}
	mediaGen := &fakeMedia{err: errors.New("image stage: provider rejected the submission")}

	svc := NewService(NewStore())
	svc.Copy = copyGen
	svc.Media = mediaGen

	created, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{
		Subject: testSubject(),
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}

	final := waitForTerminal(t, svc, created.ID)
	if final.Status != statusFailed {
		t.Fatalf("status = %q, want failed", final.Status)
	}
	if final.AdCopy == nil {
		t.Error("copy generated before the media failure should be kept")
	}
}

func TestListCampaignsNewestFirst(t *testing.T) {
	svc := NewService(NewStore())

	first, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{Subject: testSubject()})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	second, err := svc.CreateCampaign(context.Background(), CreateCampaignRequest{Subject: testSubject()})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}

	campaigns := svc.ListCampaigns(context.Background())
	if len(campaigns) != 2 {
		t.Fatalf("len = %d, want 2", len(campaigns))
	}
	if campaigns[0].ID != second.ID || campaigns[1].ID != first.ID {
		t.Error("campaigns not ordered newest first")
	}
}

func TestGetCampaignUnknownID(t *testing.T) {
	svc := NewService(NewStore())

	if _, err := svc.GetCampaign(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown campaign id")
	}
}
