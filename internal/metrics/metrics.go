package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gemledger"

var (
	// RequestDuration 按路由模板统计请求耗时
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ImportOutcomes 导入结束次数，outcome: completed / pending / abandoned / failed
	ImportOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "outcomes_total",
			Help:      "Spreadsheet imports by outcome and decision.",
		},
		[]string{"outcome", "decision"},
	)

	// ImportRows 导入行数，kind: inserted / updated / skipped / duplicate / rejected
	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Spreadsheet rows by what happened to them.",
		},
		[]string{"kind"},
	)

	ImportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "stage_duration_seconds",
			Help:      "Duration of the propose and resolve stages.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	// QueueJobsProcessed 异步任务处理次数
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"job_type", "status"},
	)

	// QuoteRequests 询价单提交次数
	QuoteRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quote",
		Name:      "requests_total",
		Help:      "Quote requests submitted from the storefront.",
	})

	// RateLimited 被限流拒绝的请求
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limit rule.",
		},
		[]string{"rule"},
	)
)

// DefaultRegistry 应用指标注册表
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ImportOutcomes,
		ImportRows,
		ImportDuration,
		QueueJobsProcessed,
		QuoteRequests,
		RateLimited,
	)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Middleware gin 请求指标中间件，path 使用路由模板避免高基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		RequestInFlight.Inc()
		defer RequestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(method, path, status).Inc()
	}
}

// ObserveImport 记录一次导入的结束状态与行数
func ObserveImport(outcome, decision string, inserted, updated, skipped, duplicates, rejected int) {
	if decision == "" {
		decision = "none"
	}
	ImportOutcomes.WithLabelValues(outcome, decision).Inc()
	addRows("inserted", inserted)
	addRows("updated", updated)
	addRows("skipped", skipped)
	addRows("duplicate", duplicates)
	addRows("rejected", rejected)
}

func addRows(kind string, n int) {
	if n > 0 {
		ImportRows.WithLabelValues(kind).Add(float64(n))
	}
}

// ObserveStage 记录导入阶段耗时
func ObserveStage(stage string, start time.Time) {
	ImportDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
