// Package metrics exposes prometheus counters for requests and for the
// purchase, production and sales pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	purchases       prometheus.Counter
	productionRuns  *prometheus.CounterVec
	sales           *prometheus.CounterVec
	revenue         prometheus.Counter
	profit          prometheus.Counter
	stockRejections *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creamery_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creamery_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creamery_purchases_total",
			Help: "Ingredient purchases recorded.",
		}),
		productionRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creamery_production_runs_total",
			Help: "Production runs by result.",
		}, []string{"result"}),
		sales: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creamery_sales_total",
			Help: "Completed sales by source.",
		}, []string{"source"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creamery_sales_revenue_total",
			Help: "Revenue booked by completed sales.",
		}),
		profit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creamery_sales_profit_total",
			Help: "Gross profit booked by completed sales.",
		}),
		stockRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creamery_stock_rejections_total",
			Help: "Operations refused for lack of stock, by stage.",
		}, []string{"stage"}),
	}
	registry.MustRegister(
		m.requestsTotal, m.requestDuration, m.purchases, m.productionRuns,
		m.sales, m.revenue, m.profit, m.stockRejections,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) PurchaseRecorded() {
	if m == nil {
		return
	}
	m.purchases.Inc()
}

func (m *Metrics) ProductionRun(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.productionRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) SaleCompleted(source string, total, profit decimal.Decimal) {
	if m == nil {
		return
	}
	m.sales.WithLabelValues(source).Inc()
	m.revenue.Add(total.InexactFloat64())
	// Counters cannot go down; loss-making sales add nothing.
	if profit.IsPositive() {
		m.profit.Add(profit.InexactFloat64())
	}
}

func (m *Metrics) StockRejected(stage string) {
	if m == nil {
		return
	}
	m.stockRejections.WithLabelValues(stage).Inc()
}
