// Package token は署名付きクレデンシャルの発行と検証を提供する。
//
// クレデンシャルはHS256で署名されたJWTで、アイデンティティ（メールアドレス）と
// 発行時刻・有効期限を含む。サーバー側にセッション状態は持たず、
// 検証は署名と有効期限のみで完結する。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken は不正なクレデンシャルを表す。
// 形式不正・署名不一致・期限切れのいずれでも同一のエラーを返し、
// 呼び出し元は原因を区別しない（いずれも401として扱われる）。
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL はクレデンシャルのデフォルト有効期間。
const DefaultTTL = 24 * time.Hour

// Claims はクレデンシャルに埋め込むクレームを表す。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec はクレデンシャルの発行と検証を行う。
// 署名シークレットはプロセス起動時に1回注入され、以降イミュータブルとして扱う。
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec はCodecを生成する。
// ttlが0以下の場合はDefaultTTLを使用する。
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock は時刻取得関数を差し替えたCodecを返す。テスト用。
func (c *Codec) WithClock(now func() time.Time) *Codec {
	clone := *c
	clone.now = now
	return &clone
}

// Issue は指定アイデンティティのクレデンシャルを発行する。
// 有効期限は発行時刻からTTL後に固定される。
func (c *Codec) Issue(email string) (string, error) {
	issuedAt := c.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify はクレデンシャルを検証し、埋め込まれたアイデンティティを返す。
// 形式不正・署名不一致・期限切れの場合はErrInvalidTokenを返す。
func (c *Codec) Verify(credential string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

// TTL はクレデンシャルの有効期間を返す。
// CookieのMaxAgeと有効期限を揃えるために使用する。
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
