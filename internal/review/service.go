// Package review はレビュー管理のドメインロジックを提供する。
package review

import (
	"context"
	"time"

	"github.com/hotelhive/api/internal/metrics"
	"github.com/hotelhive/api/internal/model"
	"github.com/hotelhive/api/internal/repository"
	"github.com/hotelhive/api/internal/security"
)

// Service はレビュー管理のサービス層。
// 一覧取得（timestamp降順）、客室ごとの絞り込み、作成のロジックを提供する。
// ストア呼び出しには設定されたタイムアウトを適用する。
type Service struct {
	repo         repository.ReviewRepository
	sanitizer    security.ContentSanitizerService
	collector    metrics.MetricsCollector
	storeTimeout time.Duration
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	repo repository.ReviewRepository,
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

// List は全レビューをtimestamp降順で返す。
func (s *Service) List(ctx context.Context) ([]model.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	reviews, err := s.repo.ListAll(ctx)
	s.collector.RecordStoreLatency("rating.list", time.Since(start))
	return reviews, err
}

// ListByRoom は指定客室を対象とするレビューを返す。
func (s *Service) ListByRoom(ctx context.Context, roomID string) ([]model.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	reviews, err := s.repo.ListByRoomID(ctx, roomID)
	s.collector.RecordStoreLatency("rating.list_by_room", time.Since(start))
	return reviews, err
}

// Create はレビューを作成する。
// コメントは保存前にサニタイズする。対象客室の参照が空の場合はroomIDを設定し、
// タイムスタンプ未指定の場合は現在時刻を設定する。
func (s *Service) Create(ctx context.Context, roomID string, r *model.Review) (*model.InsertResult, error) {
	r.Comment = s.sanitizer.Sanitize(r.Comment)
	if r.RoomID == "" {
		r.RoomID = roomID
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.repo.Create(ctx, r)
	s.collector.RecordStoreLatency("rating.create", time.Since(start))
	if err == nil {
		s.collector.RecordReviewCreated()
	}
	return result, err
}
