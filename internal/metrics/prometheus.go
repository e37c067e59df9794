package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	upstreamTotal   *prom.CounterVec
	upstreamSeconds *prom.HistogramVec
	requestTotal    *prom.CounterVec
	requestSeconds  *prom.HistogramVec
}

func (p *promRecorder) IncUpstreamTotal(op string, success bool) {
	p.upstreamTotal.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

func (p *promRecorder) ObserveUpstreamSeconds(op string, success bool, seconds float64) {
	p.upstreamSeconds.WithLabelValues(op, strconv.FormatBool(success)).Observe(seconds)
}

func (p *promRecorder) IncRequestTotal(route string, status int) {
	p.requestTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (p *promRecorder) ObserveRequestSeconds(route string, status int, seconds float64) {
	p.requestSeconds.WithLabelValues(route, strconv.Itoa(status)).Observe(seconds)
}

func newPromRecorder(registry *prom.Registry) *promRecorder {
	p := &promRecorder{
		upstreamTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "connector_upstream_calls_total",
			Help: "Total number of calls to the external data source",
		}, []string{"op", "success"}),
		upstreamSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "connector_upstream_call_seconds",
			Help:    "External data source call duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op", "success"}),
		requestTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "connector_requests_total",
			Help: "Total number of inbound connector requests",
		}, []string{"route", "status"}),
		requestSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "connector_request_seconds",
			Help:    "Inbound connector request duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"route", "status"}),
	}
	registry.MustRegister(p.upstreamTotal, p.upstreamSeconds, p.requestTotal, p.requestSeconds)
	return p
}

// Enable installs a Prometheus recorder and returns an HTTP server exposing
// /metrics and /healthz on addr. The caller starts and stops the server.
func Enable(addr string) *http.Server {
	registry := prom.NewRegistry()
	SetRecorder(newPromRecorder(registry))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
