// Package room は客室管理のドメインロジックを提供する。
package room

import (
	"context"
	"time"

	"github.com/hotelhive/api/internal/metrics"
	"github.com/hotelhive/api/internal/model"
	"github.com/hotelhive/api/internal/repository"
	"github.com/hotelhive/api/internal/security"
)

// Service は客室管理のサービス層。
// 一覧取得、価格帯検索、空室状態の更新、レビュー追記のロジックを提供する。
// ストア呼び出しには設定されたタイムアウトを適用する。
type Service struct {
	repo         repository.RoomRepository
	sanitizer    security.ContentSanitizerService
	collector    metrics.MetricsCollector
	storeTimeout time.Duration
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	repo repository.RoomRepository,
	sanitizer security.ContentSanitizerService,
	collector metrics.MetricsCollector,
	storeTimeout time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		sanitizer:    sanitizer,
		collector:    collector,
		storeTimeout: storeTimeout,
	}
}

// withTimeout はストア呼び出し用のタイムアウト付きコンテキストを返す。
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// List は全客室を返す。
func (s *Service) List(ctx context.Context) ([]model.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rooms, err := s.repo.ListAll(ctx)
	s.collector.RecordStoreLatency("rooms.list", time.Since(start))
	return rooms, err
}

// ListByPriceRange は価格帯で絞り込んだ客室を返す。両端は包含。
func (s *Service) ListByPriceRange(ctx context.Context, low, high int) ([]model.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rooms, err := s.repo.ListByPriceRange(ctx, low, high)
	s.collector.RecordStoreLatency("rooms.list_by_price", time.Since(start))
	return rooms, err
}

// Get は指定IDの客室を返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	room, err := s.repo.FindByID(ctx, id)
	s.collector.RecordStoreLatency("rooms.find", time.Since(start))
	return room, err
}

// UpdateAvailability は客室の空室状態を更新する。
// 該当ドキュメントが存在しない場合はupsertにより新規作成される。
func (s *Service) UpdateAvailability(ctx context.Context, id string, available bool) (*model.UpdateResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.UpsertAvailability(ctx, id, available)
	s.collector.RecordStoreLatency("rooms.upsert_availability", time.Since(start))
	return result, err
}

// AppendReview は客室のreviews配列にレビューを追記する。
// コメントは保存前にサニタイズし、タイムスタンプ未指定の場合は現在時刻を設定する。
func (s *Service) AppendReview(ctx context.Context, id string, review model.RoomReview) (*model.UpdateResult, error) {
	review.Comment = s.sanitizer.Sanitize(review.Comment)
	if review.Timestamp.IsZero() {
		review.Timestamp = time.Now()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.PushReview(ctx, id, review)
	s.collector.RecordStoreLatency("rooms.push_review", time.Since(start))
	return result, err
}
