package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotelhive/api/internal/model"
)

// ReviewServiceInterface はレビューハンドラーが必要とするサービスインターフェース。
type ReviewServiceInterface interface {
	// List は全レビューをtimestamp降順で返す。
	List(ctx context.Context) ([]model.Review, error)
	// ListByRoom は指定客室を対象とするレビューを返す。
	ListByRoom(ctx context.Context, roomID string) ([]model.Review, error)
	// Create はレビューを作成する。
	Create(ctx context.Context, roomID string, r *model.Review) (*model.InsertResult, error)
}

// ReviewHandler はレビュー管理のHTTPハンドラー。
type ReviewHandler struct {
	service ReviewServiceInterface
}

// NewReviewHandler はReviewHandlerを生成する。
func NewReviewHandler(service ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// createReviewRequest はレビュー作成リクエストのボディ。
type createReviewRequest struct {
	Review model.Review `json:"review"`
}

// ListReviews は全レビュー一覧をtimestamp降順で返す。
// GET /review
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSONResponse(w, http.StatusOK, reviews)
}

// ListReviewsByRoom は指定客室を対象とするレビュー一覧を返す。
// GET /review/{id}
func (h *ReviewHandler) ListReviewsByRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	reviews, err := h.service.ListByRoom(r.Context(), roomID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSONResponse(w, http.StatusOK, reviews)
}

// CreateReview はレビューを作成する。
// ボディのレビューに客室参照がない場合はパスパラメータのIDを使用する。
// POST /rooms/review/{id}
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	result, err := h.service.Create(r.Context(), roomID, &req.Review)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
