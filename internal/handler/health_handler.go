package handler

import (
	"context"
	"net/http"
	"time"
)

// livenessMessage はルートパスの死活応答。既存デプロイのメッセージを維持する。
const livenessMessage = "Hotel Hive is running successfully!"

// StorePinger はヘルスチェックが必要とするストア疎通確認インターフェース。
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は死活監視のHTTPハンドラー。
type HealthHandler struct {
	pinger StorePinger
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(pinger StorePinger) *HealthHandler {
	return &HealthHandler{
		pinger: pinger,
	}
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// Liveness はプロセスの生存のみを返す。ストアには触れない。
// GET /
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(livenessMessage))
}

// Health はストアへの疎通を確認して結果を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	writeJSONResponse(w, http.StatusOK, healthResponse{Status: "ok"})
}
