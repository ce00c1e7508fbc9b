package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hotelhive/api/internal/model"
)

// parseObjectID はパスパラメータのIDをObjectIDに変換する。
// 形式不正の場合はAPIError（INVALID_ID）を返し、ハンドラー層で400に変換される。
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, model.NewInvalidIDError(id)
	}
	return oid, nil
}
