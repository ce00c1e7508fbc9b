// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordStoreLatency(operation string, duration time.Duration)
	RecordBookingCreated()
	RecordReviewCreated()
	RecordAuthFailure()
	RecordCredentialIssued()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus        *prometheus.CounterVec
	storeLatency      *prometheus.HistogramVec
	bookingsCreated   prometheus.Counter
	reviewsCreated    prometheus.Counter
	authFailures      prometheus.Counter
	credentialsIssued prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotelhive_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotelhive_store_latency_seconds",
			Help:    "ドキュメントストア操作のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelhive_bookings_created_total",
			Help: "作成された予約の合計数",
		}),
		reviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelhive_reviews_created_total",
			Help: "作成されたレビューの合計数",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelhive_auth_failures_total",
			Help: "クレデンシャル検証失敗の合計数",
		}),
		credentialsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelhive_credentials_issued_total",
			Help: "発行されたクレデンシャルの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.storeLatency,
		c.bookingsCreated,
		c.reviewsCreated,
		c.authFailures,
		c.credentialsIssued,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordStoreLatency はストア操作のレイテンシを記録する。
func (c *Collector) RecordStoreLatency(operation string, duration time.Duration) {
	c.storeLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordBookingCreated は予約作成を記録する。
func (c *Collector) RecordBookingCreated() {
	c.bookingsCreated.Inc()
}

// RecordReviewCreated はレビュー作成を記録する。
func (c *Collector) RecordReviewCreated() {
	c.reviewsCreated.Inc()
}

// RecordAuthFailure はクレデンシャル検証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordCredentialIssued はクレデンシャル発行を記録する。
func (c *Collector) RecordCredentialIssued() {
	c.credentialsIssued.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
