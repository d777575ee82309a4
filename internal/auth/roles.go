package auth

import (
	"context"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

// Role de um utilizador. Os valores são os literais gravados e expostos na API.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBackoffice Role = "backoffice"
	RoleVendedor   Role = "vendedor"
)

// Valida indica se r é um dos três papéis conhecidos.
func (r Role) Valida() bool {
	switch r {
	case RoleAdmin, RoleBackoffice, RoleVendedor:
		return true
	}
	return false
}

// Gates de capacidade usados pelas rotas.
var (
	QualquerAutenticado = []Role{RoleAdmin, RoleBackoffice, RoleVendedor}
	AdminOuBackoffice   = []Role{RoleAdmin, RoleBackoffice}
	ApenasAdmin         = []Role{RoleAdmin}
)

// Identidade é o utilizador verificado que faz o pedido.
type Identidade struct {
	ID    string
	Nome  string
	Email string
	Role  Role
}

// EVendedor indica se a identidade está limitada às próprias vendas.
func (i *Identidade) EVendedor() bool {
	return i != nil && i.Role == RoleVendedor
}

// Gestor indica admin ou backoffice.
func (i *Identidade) Gestor() bool {
	return i != nil && (i.Role == RoleAdmin || i.Role == RoleBackoffice)
}

// RequireRole falha com Forbidden se o papel não estiver entre os permitidos.
func RequireRole(id *Identidade, permitidos ...Role) error {
	if id == nil {
		return erros.NaoAutenticado("Não autenticado")
	}
	for _, r := range permitidos {
		if id.Role == r {
			return nil
		}
	}
	if len(permitidos) == 1 && permitidos[0] == RoleAdmin {
		return erros.Proibido("Apenas administradores")
	}
	return erros.Proibido("Acesso negado")
}

type ctxKey string

const CtxIdentidade ctxKey = "identidade"

// ComIdentidade devolve um contexto que transporta id.
func ComIdentidade(ctx context.Context, id *Identidade) context.Context {
	return context.WithValue(ctx, CtxIdentidade, id)
}

// IdentidadeDe lê a identidade colocada pelo middleware; nil se ausente.
func IdentidadeDe(ctx context.Context) *Identidade {
	id, _ := ctx.Value(CtxIdentidade).(*Identidade)
	return id
}
