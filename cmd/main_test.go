package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/cache"
	"github.com/hugoalbmartins/Leiritrix/internal/config"
	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
)

const senhaAdmin = "Leiritrix#2025"

func novoServidor(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{}
	cfg.JWT.Secret = "segredo-teste"
	cfg.JWT.ExpirationHours = 1
	cfg.Server.CorsOrigins = []string{"*"}
	cfg.Init.AdminPassword = senhaAdmin

	a, err := novaApp(context.Background(), cfg, &db.Conexao{Driver: db.DriverPostgres, Gorm: gdb}, cache.Desligada(), zap.NewNop())
	require.NoError(t, err)
	return a.router()
}

func pedir(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, email, senha string) string {
	t.Helper()
	w := pedir(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": senha})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestRaizESaude(t *testing.T) {
	h := novoServidor(t)

	w := pedir(t, h, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"CRM Leiritrix API","version":"1.1.0"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, pedir(t, h, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, pedir(t, h, http.MethodGet, "/api/config/potencias", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, pedir(t, h, http.MethodGet, "/api/nada", "", nil).Code)

	w = pedir(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `crm_http_requests_total{method="GET",route="/api/",status="200"}`)
}

func TestRotasPrivadasExigemToken(t *testing.T) {
	h := novoServidor(t)
	assert.Equal(t, http.StatusUnauthorized, pedir(t, h, http.MethodGet, "/api/sales", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, pedir(t, h, http.MethodGet, "/api/auth/me", "lixo", nil).Code)
}

func TestFluxoVendaPontaAPonta(t *testing.T) {
	h := novoServidor(t)

	w := pedir(t, h, http.MethodPost, "/api/init", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sistema inicializado")

	admin := login(t, h, "admin@leiritrix.pt", senhaAdmin)

	w = pedir(t, h, http.MethodPost, "/api/partners", admin, map[string]string{"name": "MEO"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	w = pedir(t, h, http.MethodPost, "/api/auth/register", admin, map[string]any{
		"email": "Ana@Leiritrix.pt", "name": "Ana", "role": "vendedor", "password": "Vendas#2025",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ana := login(t, h, "ana@leiritrix.pt", "Vendas#2025")

	w = pedir(t, h, http.MethodPost, "/api/sales", ana, map[string]any{
		"client_name": "Cliente Um", "category": "telecomunicacoes", "partner_id": p.ID, "contract_value": 30,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"em_negociacao"`)
	assert.Contains(t, w.Body.String(), `"partner_name":"MEO"`)

	assert.Equal(t, http.StatusForbidden, pedir(t, h, http.MethodGet, "/api/reports/sales", ana, nil).Code)
	assert.Equal(t, http.StatusForbidden, pedir(t, h, http.MethodGet, "/api/partners/all", ana, nil).Code)
	assert.Equal(t, http.StatusForbidden, pedir(t, h, http.MethodGet, "/api/users", ana, nil).Code)

	w = pedir(t, h, http.MethodGet, "/api/partners/all", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MEO")

	w = pedir(t, h, http.MethodGet, "/api/reports/sales", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)

	w = pedir(t, h, http.MethodGet, "/api/notifications/unread-count", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = pedir(t, h, http.MethodGet, "/api/notifications", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Nova venda registada"))
}

type fechoFake struct {
	chamadas int
	err      error
}

func (f *fechoFake) Fechar(ctx context.Context) error {
	f.chamadas++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("sem prazo")
	}
	return f.err
}

func TestNovaAppFalhaEBaseFechada(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// sem segredo JWT, novaApp falha depois de abrir a base
	_, err = novaApp(context.Background(), &config.Config{}, &db.Conexao{Driver: db.DriverPostgres, Gorm: gdb}, cache.Desligada(), zap.NewNop())
	require.Error(t, err)

	core, logs := observer.New(zap.ErrorLevel)
	f := &fechoFake{}
	fechar(f, time.Second, zap.New(core))
	assert.Equal(t, 1, f.chamadas)
	assert.Zero(t, logs.Len())

	f.err = errors.New("falhou")
	fechar(f, time.Second, zap.New(core))
	assert.Equal(t, 1, logs.Len())
}
