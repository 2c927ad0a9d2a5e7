// Package metrics 提供基于Prometheus的指标收集框架
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值（请求总数、错误总数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数）
// - **Histogram（直方图）**：观测值的分布，自动计算分位数（请求耗时P50/P90/P99）
//
// 命名规范：
// 1. Counter以`_total`结尾：`http_requests_total`
// 2. Histogram以单位结尾：`http_request_duration_seconds`
// 3. Gauge使用现在时态：`http_requests_in_progress`
//
// 标签注意事项：避免高基数标签（不要用记录ID作标签，用entity/operation/status
// 这类有限取值的维度）
//
// 使用示例：
//
//	// 1. 初始化指标
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	metrics.IncCounterVec(metrics.EntityOperationsTotal, map[string]string{
//	    "entity": "user", "operation": "create", "result": "success",
//	})
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/users）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// EntityOperationsTotal 实体CRUD操作总数（Counter）
	// 标签：entity（user/book）、operation（create/update/get/delete/list）、
	// result（success/failure）
	EntityOperationsTotal *prometheus.CounterVec

	// CascadeDeletesTotal 级联删除执行总数（Counter）
	// 删除读者时连带删除其图书的事务计数
	CascadeDeletesTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 覆盖大部分HTTP请求耗时范围
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 业务指标
	EntityOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_operations_total",
			Help: "实体CRUD操作总数",
		},
		[]string{"entity", "operation", "result"},
	)

	CascadeDeletesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_deletes_total",
			Help: "级联删除执行总数",
		},
	)
}

// 便捷函数
// 说明：未调用InitMetrics时静默跳过，业务代码不必关心指标是否启用

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
