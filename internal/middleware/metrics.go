package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metricas regista contagem e duração dos pedidos HTTP.
type Metricas struct {
	pedidos *prometheus.CounterVec
	duracao *prometheus.HistogramVec
}

func NewMetricas(reg prometheus.Registerer) *Metricas {
	m := &Metricas{
		pedidos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total de pedidos HTTP por método, rota e status.",
		}, []string{"method", "route", "status"}),
		duracao: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Duração dos pedidos HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.pedidos, m.duracao)
	return m
}

// Middleware usa o template da rota mux como label, para não criar uma série por id.
func (m *Metricas) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := novoRecorder(w)

		next.ServeHTTP(rec, r)

		route := rotaDe(r)
		m.pedidos.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		m.duracao.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func rotaDe(r *http.Request) string {
	if cur := mux.CurrentRoute(r); cur != nil {
		if tpl, err := cur.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "desconhecida"
}
