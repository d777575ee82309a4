package venda

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
)

// comIdentidade substitui o middleware de autenticação nos testes.
func comIdentidade(id *auth.Identidade, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.ComIdentidade(r.Context(), id)))
	})
}

func novoRouter(h *Handler, id *auth.Identidade) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/sales", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/sales", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/sales/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/sales/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/sales/{id}/commission", h.AtribuirComissao).Methods(http.MethodPut)
	r.HandleFunc("/config/potencias", h.Potencias).Methods(http.MethodGet)
	return comIdentidade(id, r)
}

func chamar(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestHandlerProibidoVersusNaoEncontrado(t *testing.T) {
	a := novoAmbiente(t)
	h := NewHandler(a.svc)
	alheia := a.criar(t, vend2, CriarRequest{ClientName: "B", Category: CategoriaEnergia, PartnerID: a.edp.ID})

	rec := chamar(t, novoRouter(h, vend1), http.MethodGet, "/sales/"+alheia.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = chamar(t, novoRouter(h, vend1), http.MethodGet, "/sales/nao-existe", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venda não encontrada")

	rec = chamar(t, novoRouter(h, vend2), http.MethodGet, "/sales/"+alheia.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerCriarEListar(t *testing.T) {
	a := novoAmbiente(t)
	router := novoRouter(NewHandler(a.svc), vend1)

	rec := chamar(t, router, http.MethodPost, "/sales", map[string]any{
		"client_name": "Sofia",
		"category":    "telecomunicacoes",
		"partner_id":  a.meo.ID,
		"req":         "REQ-7",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v Venda
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "em_negociacao", string(v.Status))

	rec = chamar(t, router, http.MethodPost, "/sales", map[string]any{
		"client_name": "Sofia",
		"category":    "telecomunicacoes",
		"partner_id":  "inexistente",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "parceiro_invalido")

	rec = chamar(t, router, http.MethodGet, "/sales?status=ativo", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = chamar(t, router, http.MethodGet, "/sales?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerAtualizarDataInvalida(t *testing.T) {
	a := novoAmbiente(t)
	v := a.criar(t, vend1, CriarRequest{ClientName: "Rui", Category: CategoriaEnergia, PartnerID: a.edp.ID})

	rec := chamar(t, novoRouter(NewHandler(a.svc), vend1), http.MethodPut, "/sales/"+v.ID, map[string]any{"active_date": "31-12-2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Formato de data inválido")
}

func TestHandlerComissao(t *testing.T) {
	a := novoAmbiente(t)
	v := a.criar(t, vend1, CriarRequest{ClientName: "Rui", Category: CategoriaEnergia, PartnerID: a.edp.ID})

	rec := chamar(t, novoRouter(NewHandler(a.svc), admin), http.MethodPut, "/sales/"+v.ID+"/commission", map[string]any{"commission": 150.00})
	require.Equal(t, http.StatusOK, rec.Code)
	var got Venda
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Commission)
	assert.Equal(t, 150.0, *got.Commission)

	rec = chamar(t, novoRouter(NewHandler(a.svc), admin), http.MethodPut, "/sales/"+v.ID+"/commission", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerPotencias(t *testing.T) {
	a := novoAmbiente(t)
	rec := chamar(t, novoRouter(NewHandler(a.svc), vend1), http.MethodGet, "/config/potencias", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 14)
	assert.Equal(t, "Outra", got[13])
}
