package model

// InsertResult は挿入操作の結果を表す。
// JSONフィールド名はMongoDB Node.jsドライバのレスポンス形式に合わせており、
// 既存クライアントは従来と同じレスポンスボディを受け取る。
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult は更新操作の結果を表す。
// upsertが発生しなかった場合、UpsertedIDはnullになる。
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult は削除操作の結果を表す。
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
