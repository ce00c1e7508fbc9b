package review

import (
	"context"
	"testing"
	"time"

	"github.com/hotelhive/api/internal/model"
)

// --- モック定義 ---

type mockReviewRepo struct {
	listAllFn      func(ctx context.Context) ([]model.Review, error)
	listByRoomIDFn func(ctx context.Context, roomID string) ([]model.Review, error)
	createFn       func(ctx context.Context, r *model.Review) (*model.InsertResult, error)
}

func (m *mockReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	return m.listAllFn(ctx)
}

func (m *mockReviewRepo) ListByRoomID(ctx context.Context, roomID string) ([]model.Review, error) {
	return m.listByRoomIDFn(ctx, roomID)
}

func (m *mockReviewRepo) Create(ctx context.Context, r *model.Review) (*model.InsertResult, error) {
	return m.createFn(ctx, r)
}

type countingCollector struct {
	reviewCreated int
}

func (c *countingCollector) RecordHTTPStatus(int)                     {}
func (c *countingCollector) RecordStoreLatency(string, time.Duration) {}
func (c *countingCollector) RecordBookingCreated()                    {}
func (c *countingCollector) RecordReviewCreated()                     { c.reviewCreated++ }
func (c *countingCollector) RecordAuthFailure()                       {}
func (c *countingCollector) RecordCredentialIssued()                  {}

type markingSanitizer struct{}

func (markingSanitizer) Sanitize(raw string) string { return "clean:" + raw }

// --- テスト ---

func TestService_Create_SanitizesAndDefaults(t *testing.T) {
	var got *model.Review
	repo := &mockReviewRepo{
		createFn: func(ctx context.Context, r *model.Review) (*model.InsertResult, error) {
			got = r
			return &model.InsertResult{Acknowledged: true, InsertedID: "abc"}, nil
		},
	}
	collector := &countingCollector{}

	svc := NewService(repo, markingSanitizer{}, collector, time.Second)

	review := &model.Review{Username: "guest", Rating: 5, Comment: "great stay"}
	if _, err := svc.Create(context.Background(), "room-1", review); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got.Comment != "clean:great stay" {
		t.Errorf("comment = %q, want %q", got.Comment, "clean:great stay")
	}
	if got.RoomID != "room-1" {
		t.Errorf("roomID = %q, want %q", got.RoomID, "room-1")
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set when zero")
	}
	if collector.reviewCreated != 1 {
		t.Errorf("reviewCreated = %d, want 1", collector.reviewCreated)
	}
}

func TestService_Create_KeepsExistingRoomRef(t *testing.T) {
	var got *model.Review
	repo := &mockReviewRepo{
		createFn: func(ctx context.Context, r *model.Review) (*model.InsertResult, error) {
			got = r
			return &model.InsertResult{Acknowledged: true}, nil
		},
	}

	svc := NewService(repo, markingSanitizer{}, &countingCollector{}, time.Second)

	review := &model.Review{RoomID: "room-from-body", Comment: "ok"}
	if _, err := svc.Create(context.Background(), "room-from-path", review); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.RoomID != "room-from-body" {
		t.Errorf("roomID = %q, want %q", got.RoomID, "room-from-body")
	}
}

func TestService_ListByRoom_ForwardsRoomID(t *testing.T) {
	var gotRoomID string
	repo := &mockReviewRepo{
		listByRoomIDFn: func(ctx context.Context, roomID string) ([]model.Review, error) {
			gotRoomID = roomID
			return []model.Review{}, nil
		},
	}

	svc := NewService(repo, markingSanitizer{}, &countingCollector{}, time.Second)

	if _, err := svc.ListByRoom(context.Background(), "room-9"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotRoomID != "room-9" {
		t.Errorf("roomID = %q, want %q", gotRoomID, "room-9")
	}
}

func TestService_List_StoreCallHasDeadline(t *testing.T) {
	repo := &mockReviewRepo{
		listAllFn: func(ctx context.Context) ([]model.Review, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("store call context should have a deadline")
			}
			return []model.Review{}, nil
		},
	}

	svc := NewService(repo, markingSanitizer{}, &countingCollector{}, time.Second)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
