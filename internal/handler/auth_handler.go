// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hotelhive/api/internal/middleware"
	"github.com/hotelhive/api/internal/model"
)

// TokenIssuer は認証ハンドラーが必要とするトークン発行インターフェース。
type TokenIssuer interface {
	// Issue はメールアドレスを主体とする署名付きクレデンシャルを発行する。
	Issue(email string) (string, error)
	// TTL はクレデンシャルの有効期間を返す。
	TTL() time.Duration
}

// CredentialRecorder はクレデンシャル発行のメトリクス記録インターフェース。
type CredentialRecorder interface {
	RecordCredentialIssued()
}

// AuthHandlerConfig は認証ハンドラーの設定。
// Cookie属性は実行環境（APP_ENV）から導出される。
type AuthHandlerConfig struct {
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// AuthHandler はクレデンシャル発行・破棄のHTTPハンドラー。
type AuthHandler struct {
	issuer   TokenIssuer
	recorder CredentialRecorder
	config   AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(issuer TokenIssuer, recorder CredentialRecorder, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		issuer:   issuer,
		recorder: recorder,
		config:   config,
	}
}

// issueCredentialRequest はクレデンシャル発行リクエストのボディ。
// email以外のフィールドは無視する。
type issueCredentialRequest struct {
	Email string `json:"email"`
}

// successResponse は認証系エンドポイントの成功レスポンス。
type successResponse struct {
	Success bool `json:"success"`
}

// IssueCredential はメールアドレスに対して署名付きクレデンシャルを発行し、
// Cookieに設定する。本人確認は行わない（既存クライアントとの互換仕様）。
// POST /jwt
func (h *AuthHandler) IssueCredential(w http.ResponseWriter, r *http.Request) {
	var req issueCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	if req.Email == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("emailが空です"))
		return
	}

	credential, err := h.issuer.Issue(req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(h.issuer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})

	h.recorder.RecordCredentialIssued()

	writeJSONResponse(w, http.StatusOK, successResponse{Success: true})
}

// Logout はクレデンシャルCookieを破棄する。
// クレデンシャル自体はステートレスなため、サーバー側での失効処理はない。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})

	writeJSONResponse(w, http.StatusOK, successResponse{Success: true})
}
