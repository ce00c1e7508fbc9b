package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hotelhive/api/internal/model"
)

// roomCollection は客室コレクションの名前。
// 既存デプロイメントとの互換性のため従来の名前を維持する。
const roomCollection = "rooms"

// MongoRoomRepo はMongoDBを使用した客室リポジトリ。
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo はMongoRoomRepoを生成する。
func NewMongoRoomRepo(db *mongo.Database) *MongoRoomRepo {
	return &MongoRoomRepo{coll: db.Collection(roomCollection)}
}

// ListAll は全客室を取得する。
func (r *MongoRoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := []model.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

// ListByPriceRange は価格帯で客室を絞り込む。両端は包含。
func (r *MongoRoomRepo) ListByPriceRange(ctx context.Context, low, high int) ([]model.Room, error) {
	filter := bson.D{{Key: "pricePerNight", Value: bson.D{
		{Key: "$gte", Value: low},
		{Key: "$lte", Value: high},
	}}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by price range: %w", err)
	}

	rooms := []model.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

// FindByID は指定IDの客室を取得する。見つからない場合はnilを返す。
func (r *MongoRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	room := &model.Room{}
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

// UpsertAvailability は客室の空室状態を更新する。
// 該当ドキュメントが存在しない場合はavailabilityフィールドのみを持つ
// 新規ドキュメントを作成する。
func (r *MongoRoomRepo) UpsertAvailability(ctx context.Context, id string, available bool) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "availability", Value: available},
	}}}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert room availability: %w", err)
	}
	return updateResultFrom(res), nil
}

// PushReview は客室のreviews配列にレビューを追記する。
func (r *MongoRoomRepo) PushReview(ctx context.Context, id string, review model.RoomReview) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$push", Value: bson.D{
		{Key: "reviews", Value: review},
	}}}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to push room review: %w", err)
	}
	return updateResultFrom(res), nil
}

// updateResultFrom はドライバの更新結果をAPIレスポンス用の型に変換する。
func updateResultFrom(res *mongo.UpdateResult) *model.UpdateResult {
	return &model.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// compile-time interface check
var _ RoomRepository = (*MongoRoomRepo)(nil)
