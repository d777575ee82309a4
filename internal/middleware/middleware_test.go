package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetricasUsamTemplateDaRota(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricas(reg)

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/sales/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/sales/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.pedidos.WithLabelValues("GET", "/api/sales/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duracao))
}

func TestRecuperarDevolve500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recuperar(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recuperado", logs.All()[0].Message)
}

func TestLoggingRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var visto string
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto = RequestIDDe(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader("{}")))

	require.NotEmpty(t, visto)
	assert.Equal(t, visto, w.Header().Get(HeaderRequestID))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(http.StatusCreated), logs.All()[0].ContextMap()["status"])

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "fixo")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "fixo", visto)
}

func TestRecorderHijackSemSuporte(t *testing.T) {
	rec := novoRecorder(httptest.NewRecorder())
	_, _, err := rec.Hijack()
	assert.Error(t, err)
	assert.Same(t, rec, novoRecorder(rec))
}
