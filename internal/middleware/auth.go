// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hotelhive/api/internal/model"
)

// TokenCookieName はクレデンシャルを運ぶCookieの名前。
const TokenCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みアイデンティティ
// （メールアドレス）を格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はクレデンシャル検証に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(credential string) (string, error)
}

// AuthFailureRecorder は認証失敗のメトリクス記録インターフェース。
type AuthFailureRecorder interface {
	RecordAuthFailure()
}

// NewAuthMiddleware はHTTP Only Cookieからクレデンシャルを読み取り、
// 署名と有効期限を検証するミドルウェアを返す。
// 認証済みアイデンティティをリクエストコンテキストに注入する。
// クレデンシャルが欠如・不正・期限切れのリクエストには401を返し、
// 後続のハンドラーは呼び出さない。recorderがnilの場合は記録をスキップする。
func NewAuthMiddleware(verifier TokenVerifier, recorder AuthFailureRecorder) func(next http.Handler) http.Handler {
	recordFailure := func() {
		if recorder != nil {
			recorder.RecordAuthFailure()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからクレデンシャルを取得
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				recordFailure()
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. 署名と有効期限を検証
			identity, err := verifier.Verify(cookie.Value)
			if err != nil {
				slog.Warn("credential verification failed",
					slog.String("path", r.URL.Path),
				)
				recordFailure()
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みアイデンティティをコンテキストに注入
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストから認証済みアイデンティティを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (string, error) {
	identity, ok := ctx.Value(identityContextKey).(string)
	if !ok || identity == "" {
		return "", fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストにアイデンティティを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
