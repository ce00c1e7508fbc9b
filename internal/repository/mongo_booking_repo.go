package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hotelhive/api/internal/model"
)

// bookingCollection は予約コレクションの名前。
// 既存デプロイメントとの互換性のため従来の名前を維持する。
const bookingCollection = "booking"

// MongoBookingRepo はMongoDBを使用した予約リポジトリ。
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo はMongoBookingRepoを生成する。
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection(bookingCollection)}
}

// ListAll は全予約を取得する。
func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := []model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByEmail は指定メールアドレスが所有する予約を取得する。
func (r *MongoBookingRepo) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by email: %w", err)
	}

	bookings := []model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Create は予約を作成する。
func (r *MongoBookingRepo) Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &model.InsertResult{
		Acknowledged: res.Acknowledged,
		InsertedID:   res.InsertedID,
	}, nil
}

// UpsertDate は予約の宿泊日を更新する。
// 該当ドキュメントが存在しない場合はdateフィールドのみを持つ新規ドキュメントを作成する。
func (r *MongoBookingRepo) UpsertDate(ctx context.Context, id, date string) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "date", Value: date},
	}}}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert booking date: %w", err)
	}
	return updateResultFrom(res), nil
}

// DeleteByID は指定IDの予約を削除する。
func (r *MongoBookingRepo) DeleteByID(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}
	return &model.DeleteResult{
		Acknowledged: res.Acknowledged,
		DeletedCount: res.DeletedCount,
	}, nil
}

// compile-time interface check
var _ BookingRepository = (*MongoBookingRepo)(nil)
