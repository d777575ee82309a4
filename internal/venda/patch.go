package venda

import (
	"time"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// DiasPorMesFidelizacao é a duração fixa de um mês de fidelização.
const DiasPorMesFidelizacao = 30

// FimFidelizacao devolve ativo + meses×30 dias.
func FimFidelizacao(ativo time.Time, meses int) time.Time {
	return ativo.AddDate(0, 0, meses*DiasPorMesFidelizacao)
}

// MontarPatch constrói as alterações a gravar a partir do pedido. Campos nulos
// não mudam nada, req só é aceite em telecomunicações e commission só
// para admin/backoffice; as recusas são silenciosas.
func MontarPatch(actor *auth.Identidade, atual *Venda, req AtualizarRequest, agora time.Time) (map[string]any, error) {
	agora = agora.UTC()
	campos := map[string]any{}

	if req.Status != nil {
		campos["status"] = *req.Status
	}
	if req.Notes != nil {
		campos["notes"] = *req.Notes
	}
	if req.REQ != nil && atual.Category == CategoriaTelecom {
		campos["req"] = *req.REQ
	}
	if req.Commission != nil && actor.Gestor() {
		marcarComissao(campos, actor, *req.Commission, agora)
	}

	dataNoPedido := req.ActiveDate != nil && *req.ActiveDate != ""
	if dataNoPedido {
		ativo, err := utils.ParseISO(*req.ActiveDate)
		if err != nil {
			return nil, erros.FormatoDataInvalido()
		}
		marcarAtivacao(campos, ativo, atual.LoyaltyMonths)
	}

	if req.Status != nil && *req.Status == StatusAtivo && atual.Status != StatusAtivo &&
		atual.ActiveDate == nil && !dataNoPedido {
		marcarAtivacao(campos, agora, atual.LoyaltyMonths)
	}

	campos["updated_at"] = utils.FormatarISO(agora)
	return campos, nil
}

func marcarAtivacao(campos map[string]any, ativo time.Time, meses int) {
	campos["active_date"] = utils.FormatarISO(ativo)
	if meses > 0 {
		campos["loyalty_end_date"] = utils.FormatarISO(FimFidelizacao(ativo, meses))
	}
}

func marcarComissao(campos map[string]any, actor *auth.Identidade, valor float64, agora time.Time) {
	campos["commission"] = valor
	campos["commission_assigned_by"] = actor.Nome
	campos["commission_assigned_at"] = utils.FormatarISO(agora)
}
