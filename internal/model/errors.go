// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, booking, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeInvalidPriceRange = "INVALID_PRICE_RANGE"
	ErrCodeInvalidBody       = "INVALID_BODY"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
)

// NewUnauthorizedError は認証エラーを生成する。
// クレデンシャルの欠如・署名不正・期限切れのいずれでも同一のエラーを返す。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewForbiddenError は所有権チェック失敗のエラーを生成する。
// 認証は通過しているが、要求されたリソースの所有者ではない場合に使用する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このリソースへのアクセス権限がありません。",
		Category: "auth",
		Action:   "自分のメールアドレスに紐づく予約のみ参照できます。",
	}
}

// NewInvalidIDError は不正なドキュメントIDのエラーを生成する。
func NewInvalidIDError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("不正なIDです: %s", id),
		Category: "validation",
		Action:   "24文字の16進数のドキュメントIDを指定してください。",
	}
}

// NewInvalidPriceRangeError は不正な価格帯パラメータのエラーを生成する。
func NewInvalidPriceRangeError(low, high string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPriceRange,
		Message:  fmt.Sprintf("不正な価格帯です: %s〜%s", low, high),
		Category: "validation",
		Action:   "下限と上限を整数で指定してください。",
	}
}

// NewInvalidBodyError は不正なリクエストボディのエラーを生成する。
func NewInvalidBodyError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBody,
		Message:  fmt.Sprintf("不正なリクエストボディです: %s", reason),
		Category: "validation",
		Action:   "リクエストボディの形式を確認してください。",
	}
}
