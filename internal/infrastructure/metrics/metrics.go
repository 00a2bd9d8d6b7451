package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Session metrics
	LoginAttempts   *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
	SessionsEnded   *prometheus.CounterVec
	SessionDuration prometheus.Histogram

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Loan metrics
	LoansRequested *prometheus.CounterVec
	LoansGranted   prometheus.Counter
	LoansCancelled prometheus.Counter

	// Account metrics
	AccountsOpen   prometheus.Gauge
	AccountsClosed prometheus.Counter

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Redis metrics
	RedisOperations *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Session metrics
		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "bankist_active_sessions",
			Help: "Number of logged-in sessions",
		}),
		SessionsEnded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_sessions_ended_total",
				Help: "Total number of ended sessions",
			},
			[]string{"reason"},
		),
		SessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankist_session_duration_seconds",
			Help:    "Time from login to logout",
			Buckets: []float64{1, 10, 30, 60, 120, 300, 600, 1800},
		}),

		// Transfer metrics
		TransfersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "bankist_transfers_created_total",
			Help: "Total number of transfers applied",
		}),
		TransferAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankist_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_transfer_rejections_total",
				Help: "Total number of rejected transfers by outcome",
			},
			[]string{"outcome"},
		),

		// Loan metrics
		LoansRequested: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_loans_requested_total",
				Help: "Total number of loan requests by outcome",
			},
			[]string{"outcome"},
		),
		LoansGranted: f.NewCounter(prometheus.CounterOpts{
			Name: "bankist_loans_granted_total",
			Help: "Total number of loans credited",
		}),
		LoansCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "bankist_loans_cancelled_total",
			Help: "Total number of pending loans voided before credit",
		}),

		// Account metrics
		AccountsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "bankist_accounts_open",
			Help: "Number of accounts in the store",
		}),
		AccountsClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "bankist_accounts_closed_total",
			Help: "Total number of closed accounts",
		}),

		// Event metrics
		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_events_published_total",
				Help: "Total number of domain events handed to the broker",
			},
			[]string{"event_type", "result"},
		),

		// API metrics
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Redis metrics
		RedisOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_redis_operations_total",
				Help: "Total number of Redis operations",
			},
			[]string{"operation", "status"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounter(
			prometheus.CounterOpts{
				Name: "bankist_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
		),
	}
}
