package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// Resolvedor carrega o utilizador do token. Deve devolver erros.ContaDesativada
// para contas inativas e erros.NaoEncontrado quando o utilizador não existe.
type Resolvedor interface {
	ResolverIdentidade(ctx context.Context, userID string) (*Identidade, error)
}

type Middleware struct {
	Tokens     *Tokens
	Resolvedor Resolvedor
}

func NewMiddleware(tokens *Tokens, r Resolvedor) *Middleware {
	return &Middleware{Tokens: tokens, Resolvedor: r}
}

// Autenticar valida o Bearer token, resolve o utilizador e coloca a
// Identidade no contexto.
func (m *Middleware) Autenticar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		id, err := m.Identificar(r)
		if err != nil {
			utils.ResponderErro(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ComIdentidade(r.Context(), id)))
	})
}

// Identificar resolve a identidade de um pedido sem escrever a resposta.
func (m *Middleware) Identificar(r *http.Request) (*Identidade, error) {
	raw := TokenDoPedido(r)
	if raw == "" {
		return nil, erros.NaoAutenticado("Token ausente")
	}
	claims, err := m.Tokens.ValidarToken(raw)
	if err != nil {
		if TokenExpirado(err) {
			return nil, erros.NaoAutenticado("Token expirado")
		}
		return nil, erros.NaoAutenticado("Token inválido")
	}
	id, err := m.Resolvedor.ResolverIdentidade(r.Context(), claims.UserID)
	if err != nil {
		e := erros.De(err)
		if e.Codigo == erros.CodigoNaoEncontrado {
			return nil, erros.NaoAutenticado("Utilizador não encontrado")
		}
		return nil, err
	}
	return id, nil
}

// TokenDoPedido lê "Authorization: Bearer"; para websockets aceita ?token=.
func TokenDoPedido(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("token")
	}
	return ""
}

// RequireRoles devolve um middleware mux que só deixa passar os papéis indicados.
func RequireRoles(permitidos ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := RequireRole(IdentidadeDe(r.Context()), permitidos...); err != nil {
				utils.ResponderErro(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin é o gate ApenasAdmin.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRoles(ApenasAdmin...)(next)
}
