package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hotelhive/api/internal/model"
)

// RoomServiceInterface は客室ハンドラーが必要とするサービスインターフェース。
type RoomServiceInterface interface {
	// List は全客室を返す。
	List(ctx context.Context) ([]model.Room, error)
	// ListByPriceRange は価格帯（両端含む）で絞り込んだ客室を返す。
	ListByPriceRange(ctx context.Context, low, high int) ([]model.Room, error)
	// Get は指定IDの客室を返す。存在しない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.Room, error)
	// UpdateAvailability は客室の空き状況を更新する（upsert）。
	UpdateAvailability(ctx context.Context, id string, available bool) (*model.UpdateResult, error)
	// AppendReview は客室ドキュメントにレビューを追記する。
	AppendReview(ctx context.Context, id string, review model.RoomReview) (*model.UpdateResult, error)
}

// RoomHandler は客室管理のHTTPハンドラー。
type RoomHandler struct {
	service RoomServiceInterface
}

// NewRoomHandler はRoomHandlerを生成する。
func NewRoomHandler(service RoomServiceInterface) *RoomHandler {
	return &RoomHandler{
		service: service,
	}
}

// updateAvailabilityRequest は空き状況更新リクエストのボディ。
type updateAvailabilityRequest struct {
	Status bool `json:"status"`
}

// appendReviewRequest はレビュー追記リクエストのボディ。
type appendReviewRequest struct {
	Review model.RoomReview `json:"review"`
}

// ListRooms は全客室一覧を返す。
// GET /rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}

	writeJSONResponse(w, http.StatusOK, rooms)
}

// ListRoomsByPriceRange は価格帯で絞り込んだ客室一覧を返す。
// 下限・上限とも範囲に含む。整数として解釈できないパラメータは400を返す。
// GET /room/{low}/{high}
func (h *RoomHandler) ListRoomsByPriceRange(w http.ResponseWriter, r *http.Request) {
	lowParam := chi.URLParam(r, "low")
	highParam := chi.URLParam(r, "high")

	low, lowErr := strconv.Atoi(lowParam)
	high, highErr := strconv.Atoi(highParam)
	if lowErr != nil || highErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidPriceRangeError(lowParam, highParam))
		return
	}

	rooms, err := h.service.ListByPriceRange(r.Context(), low, high)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}

	writeJSONResponse(w, http.StatusOK, rooms)
}

// GetRoom は客室詳細を返す。認証ゲートの内側に配置する。
// 存在しないIDの場合は200でnullを返す（既存クライアントとの互換性を維持）。
// GET /rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	room, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, room)
}

// UpdateRoomAvailability は客室の空き状況を更新する。
// 該当ドキュメントが存在しない場合はupsertにより新規作成される。
// PUT /rooms/update/{id}
func (h *RoomHandler) UpdateRoomAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// AppendRoomReview は客室ドキュメントのreviews配列にレビューを追記する。
// PUT /rooms/review/{id}
func (h *RoomHandler) AppendRoomReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req appendReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	result, err := h.service.AppendReview(r.Context(), id, req.Review)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeInvalidID, model.ErrCodeInvalidPriceRange, model.ErrCodeInvalidBody:
		return http.StatusBadRequest
	case model.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
