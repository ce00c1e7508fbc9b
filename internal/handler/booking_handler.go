package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotelhive/api/internal/middleware"
	"github.com/hotelhive/api/internal/model"
)

// BookingServiceInterface は予約ハンドラーが必要とするサービスインターフェース。
type BookingServiceInterface interface {
	// List は全予約を返す。
	List(ctx context.Context) ([]model.Booking, error)
	// ListMine は指定メールアドレスが所有する予約を返す。
	ListMine(ctx context.Context, email string) ([]model.Booking, error)
	// Create は予約を作成する。
	Create(ctx context.Context, b *model.Booking) (*model.InsertResult, error)
	// UpdateDate は予約の宿泊日を変更する（upsert）。
	UpdateDate(ctx context.Context, id, date string) (*model.UpdateResult, error)
	// Delete は指定IDの予約を削除する。
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

// BookingHandler は予約管理のHTTPハンドラー。
type BookingHandler struct {
	service BookingServiceInterface
}

// NewBookingHandler はBookingHandlerを生成する。
func NewBookingHandler(service BookingServiceInterface) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// createBookingRequest は予約作成リクエストのボディ。
type createBookingRequest struct {
	Email         string `json:"email"`
	RoomID        string `json:"roomId"`
	RoomName      string `json:"roomName"`
	PricePerNight int32  `json:"pricePerNight"`
	Date          string `json:"date"`
}

// updateBookingDateRequest は宿泊日変更リクエストのボディ。
type updateBookingDateRequest struct {
	Date string `json:"date"`
}

// ListBookings は全予約一覧を返す。
// GET /booking
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSONResponse(w, http.StatusOK, bookings)
}

// ListMyBookings は認証済みアイデンティティが所有する予約一覧を返す。
// 認証ゲートの内側に配置する。クエリのemailがゲートで確立した
// アイデンティティと一致しない場合は403を返す。
// GET /my-booking?email=
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	email := r.URL.Query().Get("email")
	if email != identity {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	bookings, err := h.service.ListMine(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSONResponse(w, http.StatusOK, bookings)
}

// CreateBooking は予約を作成する。
// POST /booking
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	booking := &model.Booking{
		Email:         req.Email,
		RoomID:        req.RoomID,
		RoomName:      req.RoomName,
		PricePerNight: req.PricePerNight,
		Date:          req.Date,
	}

	result, err := h.service.Create(r.Context(), booking)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// UpdateBookingDate は予約の宿泊日を変更する。
// 該当ドキュメントが存在しない場合はupsertにより新規作成される。
// PUT /my-booking/update/{id}
func (h *BookingHandler) UpdateBookingDate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateBookingDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError("JSONの解析に失敗しました"))
		return
	}

	result, err := h.service.UpdateDate(r.Context(), id, req.Date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// DeleteBooking は予約を削除する。
// DELETE /my-booking/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
