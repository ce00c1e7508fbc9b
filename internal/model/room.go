// Package model はドメインモデルを定義する。
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Room はホテルの客室を表す。
// roomsコレクションのドキュメントに対応する。
// 客室の作成・削除は外部の管理ツールが行い、本APIは空室状態の更新と
// レビューの追記のみを行う。
type Room struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string        `bson:"name,omitempty" json:"name,omitempty"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	PricePerNight int32         `bson:"pricePerNight" json:"pricePerNight"`
	Availability  bool          `bson:"availability" json:"availability"`
	Images        []string      `bson:"images,omitempty" json:"images,omitempty"`
	Reviews       []RoomReview  `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

// RoomReview は客室ドキュメントに埋め込まれるレビューを表す。
// ratingコレクションのReviewとは別に、客室側のreviews配列に追記される。
type RoomReview struct {
	Username  string    `bson:"username,omitempty" json:"username,omitempty"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
