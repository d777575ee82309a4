// Package alerta lista as vendas ativas cuja fidelização está a terminar.
package alerta

import (
	"context"
	"time"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

const (
	// Antecedencia é a janela do alerta: 7 meses de 30 dias.
	Antecedencia  = 210 * 24 * time.Hour
	LimiteAlertas = 100
)

// Alerta é a venda com os dias que faltam para o fim da fidelização.
type Alerta struct {
	venda.Venda
	DaysUntilEnd int `json:"days_until_end"`
}

type Service struct {
	Vendas venda.Repository

	agora func() time.Time
}

func NewService(vendas venda.Repository) *Service {
	return &Service{Vendas: vendas, agora: time.Now}
}

// Fidelizacao devolve as vendas ativas com fim de fidelização até agora+210 dias,
// da mais próxima para a mais distante.
func (s *Service) Fidelizacao(ctx context.Context, actor *auth.Identidade) ([]Alerta, error) {
	agora := s.agora().UTC()
	f := venda.Escopo(actor, venda.Filtro{
		Status:     venda.StatusAtivo,
		LoyaltyAte: utils.FormatarISO(agora.Add(Antecedencia)),
	})
	sales, err := s.Vendas.Listar(ctx, f, venda.OrdemFidelizacao, LimiteAlertas)
	if err != nil {
		return nil, err
	}

	out := make([]Alerta, 0, len(sales))
	for _, v := range sales {
		a := Alerta{Venda: v}
		if v.LoyaltyEndDate != nil {
			if fim, err := utils.ParseISO(*v.LoyaltyEndDate); err == nil {
				a.DaysUntilEnd = DiasAte(agora, fim)
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// DiasAte conta dias inteiros de agora até fim, nunca negativo.
func DiasAte(agora, fim time.Time) int {
	d := fim.Sub(agora)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
