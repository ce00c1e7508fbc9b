// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー投稿レビューのコメントをサニタイズし、
// XSS攻撃などのセキュリティリスクから閲覧者を保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグのみを通過させる。
package security

import "github.com/microcosm-cc/bluemonday"

// ContentSanitizerService はコメントのサニタイズ機能のインターフェースを定義する。
// レビューの保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize はコメントをサニタイズして安全なHTMLを返す。
	// 許可タグ（p, br, strong, em）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// レビューコメントは軽い装飾のみを想定しているため、許可タグは
// p, br, strong, em に限定する。リンクや画像は許可しない。
// script, iframe, style等は許可リストに含めないことで自動的に除去される。
// on*イベント属性はbluemondayのデフォルトで許可されないため除去される。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "strong", "em")

	return &contentSanitizer{
		policy: p,
	}
}

// Sanitize はコメントをサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
