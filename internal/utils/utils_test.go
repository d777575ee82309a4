package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

func TestResponderErroProblemJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sales/x", nil)

	ResponderErro(rec, req, erros.NaoEncontrado("Venda não encontrada"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/problem+json"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Venda não encontrada", body["detail"])
	assert.Equal(t, "nao_encontrado", body["code"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "/api/sales/x", body["instance"])
}

func TestResponderErroInternoNaoExpoeCausa(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/partners", nil)

	ResponderErro(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
