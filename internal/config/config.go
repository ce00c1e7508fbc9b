package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvProduction は本番環境を表すAPP_ENVの値。
// Cookieの属性（Secure/SameSite）の切り替えに使用する。
const EnvProduction = "production"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	MongoURI     string
	DatabaseName string

	// Token
	TokenSecret string
	TokenTTL    time.Duration

	// Store
	StoreTimeout time.Duration

	// Rate Limit
	RateLimitGeneral int
	RateLimitBooking int

	// Server
	ServerPort  string
	Environment string

	// CORS
	CORSAllowedOrigins []string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}

	cfg.TokenSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	if cfg.TokenSecret == "" {
		missing = append(missing, "ACCESS_TOKEN_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.DatabaseName = getEnvString("DATABASE_NAME", "HotelHiveDB")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	cfg.StoreTimeout = getEnvDuration("STORE_TIMEOUT", 10*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitBooking = getEnvInt("RATE_LIMIT_BOOKING", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "5000")
	cfg.Environment = getEnvString("APP_ENV", "development")
	cfg.CORSAllowedOrigins = splitOrigins(getEnvString("CORS_ALLOWED_ORIGINS",
		"http://localhost:5173,http://localhost:5174,https://hotel-hive9340.web.app"))

	return cfg, nil
}

// IsProduction は本番環境かどうかを返す。
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// CookieSecure はCookieにSecure属性を付けるべきかを返す。
// クロスサイトでのCookie送信（SameSite=None）はSecureが前提のため、
// 本番環境でのみtrueになる。
func (c *Config) CookieSecure() bool {
	return c.IsProduction()
}

// splitOrigins はカンマ区切りのオリジン一覧をスライスに分解する。
// 空要素と前後の空白は除去する。
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
