package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/moogar0880/problems"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

// Mensagem é a resposta simples {"message": "..."}.
type Mensagem struct {
	Message string `json:"message"`
}

// problema acrescenta o código estável ao documento RFC 7807.
type problema struct {
	*problems.Problem
	Code string `json:"code"`
}

// EscreverJSON escreve v como JSON com o status indicado.
func EscreverJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// EscreverMensagem escreve {"message": msg} com 200.
func EscreverMensagem(w http.ResponseWriter, msg string) {
	EscreverJSON(w, http.StatusOK, Mensagem{Message: msg})
}

// ResponderErro converte err num problem+json. Erros internos são registados
// e nunca expostos ao cliente.
func ResponderErro(w http.ResponseWriter, r *http.Request, err error) {
	e := erros.De(err)
	status := e.Status()
	if status >= http.StatusInternalServerError {
		zap.L().Error("erro interno",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	p := problems.NewDetailedProblem(status, e.Mensagem)
	p.Type = "/problems/" + string(e.Codigo)
	p.Instance = r.URL.Path

	w.Header().Set("Content-Type", problems.ProblemMediaType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problema{Problem: p, Code: string(e.Codigo)})
}

// DecodificarJSON lê o corpo para dst. Corpo vazio ou malformado é pedido inválido.
func DecodificarJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return erros.PedidoInvalido("Corpo do pedido vazio")
		}
		return &erros.Erro{Codigo: erros.CodigoPedidoInvalido, Mensagem: "JSON inválido", Err: err}
	}
	return nil
}
