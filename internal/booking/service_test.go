package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hotelhive/api/internal/model"
)

// --- モック定義 ---

type mockBookingRepo struct {
	listAllFn     func(ctx context.Context) ([]model.Booking, error)
	listByEmailFn func(ctx context.Context, email string) ([]model.Booking, error)
	createFn      func(ctx context.Context, b *model.Booking) (*model.InsertResult, error)
	upsertDateFn  func(ctx context.Context, id, date string) (*model.UpdateResult, error)
	deleteByIDFn  func(ctx context.Context, id string) (*model.DeleteResult, error)
}

func (m *mockBookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return m.listAllFn(ctx)
}

func (m *mockBookingRepo) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return m.listByEmailFn(ctx, email)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) (*model.InsertResult, error) {
	return m.createFn(ctx, b)
}

func (m *mockBookingRepo) UpsertDate(ctx context.Context, id, date string) (*model.UpdateResult, error) {
	return m.upsertDateFn(ctx, id, date)
}

func (m *mockBookingRepo) DeleteByID(ctx context.Context, id string) (*model.DeleteResult, error) {
	return m.deleteByIDFn(ctx, id)
}

type countingCollector struct {
	bookingCreated int
}

func (c *countingCollector) RecordHTTPStatus(int)                     {}
func (c *countingCollector) RecordStoreLatency(string, time.Duration) {}
func (c *countingCollector) RecordBookingCreated()                    { c.bookingCreated++ }
func (c *countingCollector) RecordReviewCreated()                     {}
func (c *countingCollector) RecordAuthFailure()                       {}
func (c *countingCollector) RecordCredentialIssued()                  {}

// --- テスト ---

func TestService_ListMine_ForwardsEmail(t *testing.T) {
	var gotEmail string
	repo := &mockBookingRepo{
		listByEmailFn: func(ctx context.Context, email string) ([]model.Booking, error) {
			gotEmail = email
			return []model.Booking{}, nil
		},
	}

	svc := NewService(repo, &countingCollector{}, time.Second)

	if _, err := svc.ListMine(context.Background(), "guest@example.com"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotEmail != "guest@example.com" {
		t.Errorf("email = %q, want %q", gotEmail, "guest@example.com")
	}
}

func TestService_Create_RecordsMetricOnSuccess(t *testing.T) {
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *model.Booking) (*model.InsertResult, error) {
			return &model.InsertResult{Acknowledged: true, InsertedID: "abc"}, nil
		},
	}
	collector := &countingCollector{}

	svc := NewService(repo, collector, time.Second)

	result, err := svc.Create(context.Background(), &model.Booking{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Acknowledged {
		t.Error("result should be acknowledged")
	}
	if collector.bookingCreated != 1 {
		t.Errorf("bookingCreated = %d, want 1", collector.bookingCreated)
	}
}

func TestService_Create_DoesNotRecordMetricOnFailure(t *testing.T) {
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *model.Booking) (*model.InsertResult, error) {
			return nil, errors.New("store unavailable")
		},
	}
	collector := &countingCollector{}

	svc := NewService(repo, collector, time.Second)

	if _, err := svc.Create(context.Background(), &model.Booking{}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if collector.bookingCreated != 0 {
		t.Errorf("bookingCreated = %d, want 0", collector.bookingCreated)
	}
}

func TestService_UpdateDate_ForwardsIDAndDate(t *testing.T) {
	var gotID, gotDate string
	repo := &mockBookingRepo{
		upsertDateFn: func(ctx context.Context, id, date string) (*model.UpdateResult, error) {
			gotID, gotDate = id, date
			return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}

	svc := NewService(repo, &countingCollector{}, time.Second)

	if _, err := svc.UpdateDate(context.Background(), "5f1d7f3a2e4b0a1b2c3d4e5f", "2025-07-01"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotID != "5f1d7f3a2e4b0a1b2c3d4e5f" || gotDate != "2025-07-01" {
		t.Errorf("forwarded = (%q, %q), want (5f1d7f3a2e4b0a1b2c3d4e5f, 2025-07-01)", gotID, gotDate)
	}
}

func TestService_Delete_StoreCallHasDeadline(t *testing.T) {
	repo := &mockBookingRepo{
		deleteByIDFn: func(ctx context.Context, id string) (*model.DeleteResult, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("store call context should have a deadline")
			}
			return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		},
	}

	svc := NewService(repo, &countingCollector{}, time.Second)

	result, err := svc.Delete(context.Background(), "5f1d7f3a2e4b0a1b2c3d4e5f")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", result.DeletedCount)
	}
}
