package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review は客室へのレビューを表す。
// ratingコレクションのドキュメントに対応する。
// RoomIDは対象客室への参照で、既存クライアントとの互換性のため
// ストア上のフィールド名は従来どおり "id" を使用する。
type Review struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RoomID    string        `bson:"id" json:"id"`
	Username  string        `bson:"username,omitempty" json:"username,omitempty"`
	Rating    float64       `bson:"rating" json:"rating"`
	Comment   string        `bson:"comment,omitempty" json:"comment,omitempty"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}
