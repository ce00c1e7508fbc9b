// Package app はアプリケーションの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	bookingpkg "github.com/hotelhive/api/internal/booking"
	"github.com/hotelhive/api/internal/config"
	"github.com/hotelhive/api/internal/database"
	"github.com/hotelhive/api/internal/handler"
	"github.com/hotelhive/api/internal/logger"
	"github.com/hotelhive/api/internal/metrics"
	"github.com/hotelhive/api/internal/middleware"
	"github.com/hotelhive/api/internal/repository"
	"github.com/hotelhive/api/internal/review"
	"github.com/hotelhive/api/internal/room"
	"github.com/hotelhive/api/internal/security"
	"github.com/hotelhive/api/internal/token"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "5000"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("environment", cfg.Environment),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// ストア接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストア接続
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("store disconnect failed", slog.String("error", err.Error()))
		}
	}()

	health := database.NewHealth(client)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := health.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach store: %w", err)
		}
	}

	slog.Info("store connection established",
		slog.String("database", cfg.DatabaseName),
	)

	db := client.Database(cfg.DatabaseName)

	// 2. リポジトリの初期化
	roomRepo := repository.NewMongoRoomRepo(db)
	bookingRepo := repository.NewMongoBookingRepo(db)
	reviewRepo := repository.NewMongoReviewRepo(db)

	// 3. メトリクスとセキュリティサービスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	sanitizer := security.NewContentSanitizer()

	// 4. ドメインサービスの初期化
	roomService := room.NewService(roomRepo, sanitizer, collector, cfg.StoreTimeout)
	bookingService := bookingpkg.NewService(bookingRepo, collector, cfg.StoreTimeout)
	reviewService := review.NewService(reviewRepo, sanitizer, collector, cfg.StoreTimeout)

	// 5. トークンコーデックの初期化
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL)

	// 6. Cookie属性の決定
	// クロスサイトのフロントエンドからCookieを送らせるため、
	// 本番環境ではSameSite=None（Secure前提）、それ以外はStrictを使う。
	sameSite := http.SameSiteStrictMode
	if cfg.IsProduction() {
		sameSite = http.SameSiteNoneMode
	}

	// 7. レート制限の初期化（config値はreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = perMinute(cfg.RateLimitGeneral)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.BookingRate = perMinute(cfg.RateLimitBooking)
	rateLimiterCfg.BookingBurst = cfg.RateLimitBooking
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 8. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:              slog.Default(),
		TokenVerifier:       codec,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimiter:         rateLimiter,
		StatusRecorder:      collector,
		AuthFailureRecorder: collector,
		MetricsGatherer:     registry,

		TokenIssuer:        codec,
		CredentialRecorder: collector,
		AuthConfig: handler.AuthHandlerConfig{
			CookieSecure:   cfg.CookieSecure(),
			CookieSameSite: sameSite,
		},

		RoomService:    roomService,
		BookingService: bookingService,
		ReviewService:  reviewService,

		StorePinger: health,
	}

	router := handler.NewRouter(deps)

	// 9. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	databaseURL, err := migrationURL(cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		return fmt.Errorf("failed to build migration url: %w", err)
	}

	slog.Info("running database migrations",
		slog.String("database", cfg.DatabaseName),
	)

	if err := database.RunMigrations(databaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// migrationURL は接続URIに対象データベース名のパスを設定する。
// マイグレーションドライバーはURIのパスから対象データベースを決定する。
func migrationURL(mongoURI, databaseName string) (string, error) {
	u, err := url.Parse(mongoURI)
	if err != nil {
		return "", err
	}
	u.Path = "/" + databaseName
	return u.String(), nil
}

// perMinute はreq/min値をrate.Limit（req/sec）に変換する。
func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}
