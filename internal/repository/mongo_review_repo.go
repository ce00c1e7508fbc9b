package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hotelhive/api/internal/model"
)

// reviewCollection はレビューコレクションの名前。
// 既存デプロイメントとの互換性のため従来の名前を維持する。
const reviewCollection = "rating"

// MongoReviewRepo はMongoDBを使用したレビューリポジトリ。
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo はMongoReviewRepoを生成する。
func NewMongoReviewRepo(db *mongo.Database) *MongoReviewRepo {
	return &MongoReviewRepo{coll: db.Collection(reviewCollection)}
}

// ListAll は全レビューをtimestamp降順で取得する。
func (r *MongoReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := []model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ListByRoomID は指定客室を対象とするレビューを取得する。
// ストア上の参照フィールド名は従来どおり "id"。
func (r *MongoReviewRepo) ListByRoomID(ctx context.Context, roomID string) ([]model.Review, error) {
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "id", Value: roomID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by room: %w", err)
	}

	reviews := []model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Create はレビューを作成する。
func (r *MongoReviewRepo) Create(ctx context.Context, review *model.Review) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &model.InsertResult{
		Acknowledged: res.Acknowledged,
		InsertedID:   res.InsertedID,
	}, nil
}

// compile-time interface check
var _ ReviewRepository = (*MongoReviewRepo)(nil)
