package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Booking は宿泊予約を表す。
// bookingコレクションのドキュメントに対応する。
// Emailが予約者（所有者）を示し、/my-bookingの所有権チェックで
// 認証済みアイデンティティと比較される。
type Booking struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string        `bson:"email" json:"email"`
	RoomID        string        `bson:"roomId,omitempty" json:"roomId,omitempty"`
	RoomName      string        `bson:"roomName,omitempty" json:"roomName,omitempty"`
	PricePerNight int32         `bson:"pricePerNight,omitempty" json:"pricePerNight,omitempty"`
	Date          string        `bson:"date" json:"date"`
}
