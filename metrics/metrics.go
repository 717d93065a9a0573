package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goprakritik_http_requests_total",
		Help: "HTTP requests served, by method and status class.",
	}, []string{"method", "status"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goprakritik_orders_placed_total",
		Help: "Orders persisted by the placement workflow.",
	})

	ShippingCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goprakritik_shipping_calls_total",
		Help: "Outbound shipping provider calls, by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// Middleware counts every served request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			RequestsTotal.WithLabelValues(c.Request().Method, statusClass(status)).Inc()
			return err
		}
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler exposes the Prometheus registry on an echo route.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
