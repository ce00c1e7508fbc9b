package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotelhive/api/internal/metrics"
	"github.com/hotelhive/api/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger              *slog.Logger
	TokenVerifier       middleware.TokenVerifier
	CORSAllowedOrigins  []string
	RateLimiter         *middleware.RateLimiter
	StatusRecorder      middleware.HTTPStatusRecorder
	AuthFailureRecorder middleware.AuthFailureRecorder
	MetricsGatherer     prometheus.Gatherer

	// 認証
	TokenIssuer        TokenIssuer
	CredentialRecorder CredentialRecorder
	AuthConfig         AuthHandlerConfig

	// ドメインサービス
	RoomService    RoomServiceInterface
	BookingService BookingServiceInterface
	ReviewService  ReviewServiceInterface

	// 死活監視
	StorePinger StorePinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → RecoveryMiddleware → SecurityHeadersMiddleware
//	→ LoggingMiddleware → MetricsMiddleware
//
// 認証ゲートは GET /rooms/{id} と GET /my-booking のみに適用する。
// それ以外のルートはゲートの外に配置する（既存API互換）。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))

	authHandler := NewAuthHandler(deps.TokenIssuer, deps.CredentialRecorder, deps.AuthConfig)
	roomHandler := NewRoomHandler(deps.RoomService)
	bookingHandler := NewBookingHandler(deps.BookingService)
	reviewHandler := NewReviewHandler(deps.ReviewService)
	healthHandler := NewHealthHandler(deps.StorePinger)

	authMW := middleware.NewAuthMiddleware(deps.TokenVerifier, deps.AuthFailureRecorder)
	generalLimit := deps.RateLimiter.GeneralMiddleware()
	bookingLimit := deps.RateLimiter.BookingCreationMiddleware()

	// --- 運用系ルート（レート制限の対象外） ---
	r.Get("/", healthHandler.Liveness)
	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))

	// --- APIルート ---
	r.Group(func(r chi.Router) {
		r.Use(generalLimit)

		// クレデンシャル管理
		r.Post("/jwt", authHandler.IssueCredential)
		r.Get("/logout", authHandler.Logout)

		// 客室
		r.Get("/rooms", roomHandler.ListRooms)
		r.Get("/room/{low}/{high}", roomHandler.ListRoomsByPriceRange)
		r.With(authMW).Get("/rooms/{id}", roomHandler.GetRoom)
		r.Put("/rooms/update/{id}", roomHandler.UpdateRoomAvailability)
		r.Put("/rooms/review/{id}", roomHandler.AppendRoomReview)

		// レビュー
		r.Get("/review", reviewHandler.ListReviews)
		r.Get("/review/{id}", reviewHandler.ListReviewsByRoom)
		r.Post("/rooms/review/{id}", reviewHandler.CreateReview)

		// 予約
		r.Get("/booking", bookingHandler.ListBookings)
		r.With(bookingLimit).Post("/booking", bookingHandler.CreateBooking)
		r.With(authMW).Get("/my-booking", bookingHandler.ListMyBookings)
		r.Put("/my-booking/update/{id}", bookingHandler.UpdateBookingDate)
		r.Delete("/my-booking/{id}", bookingHandler.DeleteBooking)
	})

	return r
}
