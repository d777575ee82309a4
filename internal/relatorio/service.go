// Package relatorio gera o relatório de vendas filtrado para gestores.
package relatorio

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

// LimiteRelatorio é o máximo de vendas num relatório.
const LimiteRelatorio = 10000

type Resumo struct {
	TotalCount      int     `json:"total_count"`
	TotalValue      float64 `json:"total_value"`
	TotalCommission float64 `json:"total_commission"`
}

type Relatorio struct {
	Sales   []venda.Venda `json:"sales"`
	Summary Resumo        `json:"summary"`
}

// Pedido são os filtros de GET /reports/sales. StartDate e EndDate comparam
// com created_at como strings, inclusive.
type Pedido struct {
	StartDate string
	EndDate   string
	Category  venda.Categoria
	Status    venda.Status
	SellerID  string
	PartnerID string
}

type Service struct {
	Vendas venda.Repository
}

func NewService(vendas venda.Repository) *Service {
	return &Service{Vendas: vendas}
}

func (s *Service) Gerar(ctx context.Context, p Pedido) (*Relatorio, error) {
	f := venda.Filtro{
		CreatedDe:  p.StartDate,
		CreatedAte: p.EndDate,
		Category:   p.Category,
		Status:     p.Status,
		SellerID:   p.SellerID,
		PartnerID:  p.PartnerID,
	}
	sales, err := s.Vendas.Listar(ctx, f, venda.OrdemRecentes, LimiteRelatorio)
	if err != nil {
		return nil, err
	}
	return &Relatorio{Sales: sales, Summary: Resumir(sales)}, nil
}

// Resumir soma valor e comissão; comissão nula conta como zero.
func Resumir(sales []venda.Venda) Resumo {
	valor, comissao := decimal.Zero, decimal.Zero
	for _, v := range sales {
		valor = valor.Add(decimal.NewFromFloat(v.ContractValue))
		if v.Commission != nil {
			comissao = comissao.Add(decimal.NewFromFloat(*v.Commission))
		}
	}
	return Resumo{
		TotalCount:      len(sales),
		TotalValue:      valor.InexactFloat64(),
		TotalCommission: comissao.InexactFloat64(),
	}
}
