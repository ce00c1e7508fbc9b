// Package booking は予約管理のドメインロジックを提供する。
package booking

import (
	"context"
	"time"

	"github.com/hotelhive/api/internal/metrics"
	"github.com/hotelhive/api/internal/model"
	"github.com/hotelhive/api/internal/repository"
)

// Service は予約管理のサービス層。
// 作成、一覧取得、宿泊日変更、削除のロジックを提供する。
// ストア呼び出しには設定されたタイムアウトを適用する。
//
// 所有権チェック（クエリのemailと認証済みアイデンティティの比較）は
// ハンドラー層で行う。本サービスは渡されたemailをそのままフィルタに使う。
type Service struct {
	repo         repository.BookingRepository
	collector    metrics.MetricsCollector
	storeTimeout time.Duration
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	repo repository.BookingRepository,
	collector metrics.MetricsCollector,
	storeTimeout time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		collector:    collector,
		storeTimeout: storeTimeout,
	}
}

// withTimeout はストア呼び出し用のタイムアウト付きコンテキストを返す。
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// List は全予約を返す。
func (s *Service) List(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	bookings, err := s.repo.ListAll(ctx)
	s.collector.RecordStoreLatency("booking.list", time.Since(start))
	return bookings, err
}

// ListMine は指定メールアドレスが所有する予約を返す。
func (s *Service) ListMine(ctx context.Context, email string) ([]model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	bookings, err := s.repo.ListByEmail(ctx, email)
	s.collector.RecordStoreLatency("booking.list_by_email", time.Since(start))
	return bookings, err
}

// Create は予約を作成する。
func (s *Service) Create(ctx context.Context, b *model.Booking) (*model.InsertResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.Create(ctx, b)
	s.collector.RecordStoreLatency("booking.create", time.Since(start))
	if err == nil {
		s.collector.RecordBookingCreated()
	}
	return result, err
}

// UpdateDate は予約の宿泊日を変更する。
// 該当ドキュメントが存在しない場合はupsertにより新規作成される。
func (s *Service) UpdateDate(ctx context.Context, id, date string) (*model.UpdateResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.UpsertDate(ctx, id, date)
	s.collector.RecordStoreLatency("booking.upsert_date", time.Since(start))
	return result, err
}

// Delete は指定IDの予約を削除する。
func (s *Service) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.DeleteByID(ctx, id)
	s.collector.RecordStoreLatency("booking.delete", time.Since(start))
	return result, err
}
