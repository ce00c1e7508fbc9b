// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hotelhive/api/internal/model"
)

// RoomRepository は客室データの永続化インターフェース。
type RoomRepository interface {
	// ListAll は全客室を取得する。
	ListAll(ctx context.Context) ([]model.Room, error)

	// ListByPriceRange は価格帯で客室を絞り込む。両端は包含（low <= price <= high）。
	ListByPriceRange(ctx context.Context, low, high int) ([]model.Room, error)

	// FindByID は指定IDの客室を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Room, error)

	// UpsertAvailability は客室の空室状態を更新する。
	// 該当ドキュメントが存在しない場合はavailabilityフィールドのみを持つ
	// 新規ドキュメントを作成する（upsert）。
	UpsertAvailability(ctx context.Context, id string, available bool) (*model.UpdateResult, error)

	// PushReview は客室のreviews配列にレビューを追記する。upsertは行わない。
	PushReview(ctx context.Context, id string, review model.RoomReview) (*model.UpdateResult, error)
}

// BookingRepository は予約データの永続化インターフェース。
type BookingRepository interface {
	// ListAll は全予約を取得する。
	ListAll(ctx context.Context) ([]model.Booking, error)

	// ListByEmail は指定メールアドレスが所有する予約を取得する。
	ListByEmail(ctx context.Context, email string) ([]model.Booking, error)

	// Create は予約を作成する。
	Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error)

	// UpsertDate は予約の宿泊日を更新する。
	// 該当ドキュメントが存在しない場合はdateフィールドのみを持つ
	// 新規ドキュメントを作成する（upsert）。
	UpsertDate(ctx context.Context, id, date string) (*model.UpdateResult, error)

	// DeleteByID は指定IDの予約を削除する。
	DeleteByID(ctx context.Context, id string) (*model.DeleteResult, error)
}

// ReviewRepository はレビューデータの永続化インターフェース。
type ReviewRepository interface {
	// ListAll は全レビューをtimestamp降順で取得する。
	ListAll(ctx context.Context) ([]model.Review, error)

	// ListByRoomID は指定客室を対象とするレビューを取得する。
	ListByRoomID(ctx context.Context, roomID string) ([]model.Review, error)

	// Create はレビューを作成する。
	Create(ctx context.Context, review *model.Review) (*model.InsertResult, error)
}
