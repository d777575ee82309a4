// Package dashboard calcula as métricas e as séries mensais do painel.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

const (
	MesesPorOmissao = 6
	MesesMaximo     = 36
)

// Metricas é a resposta de GET /dashboard/metrics.
type Metricas struct {
	TotalSales         int64            `json:"total_sales"`
	SalesByStatus      map[string]int64 `json:"sales_by_status"`
	SalesByCategory    map[string]int64 `json:"sales_by_category"`
	TotalContractValue float64          `json:"total_contract_value"`
	TotalCommission    float64          `json:"total_commission"`
	TotalMensalidades  float64          `json:"total_mensalidades"`
	ComissoesPrevistas float64          `json:"comissoes_previstas"`
	ComissoesAtivas    float64          `json:"comissoes_ativas"`
	SalesThisMonth     int64            `json:"sales_this_month"`
}

// Mes é um ponto da série mensal.
type Mes struct {
	Month string  `json:"month"`
	Sales int64   `json:"sales"`
	Value float64 `json:"value"`
}

// Intervalo é um mês de calendário [Inicio, Fim).
type Intervalo struct {
	Inicio time.Time
	Fim    time.Time
}

func (i Intervalo) Rotulo() string {
	return i.Inicio.Format("Jan 2006")
}

type Service struct {
	Vendas venda.Repository

	agora func() time.Time
}

func NewService(vendas venda.Repository) *Service {
	return &Service{Vendas: vendas, agora: time.Now}
}

type soma struct {
	filtro venda.Filtro
	campo  string
	dst    *float64
}

// Metricas agrega as vendas visíveis para actor.
func (s *Service) Metricas(ctx context.Context, actor *auth.Identidade) (*Metricas, error) {
	base := venda.Escopo(actor, venda.Filtro{})

	porEstado, err := s.Vendas.ContarPor(ctx, base, venda.CampoStatus)
	if err != nil {
		return nil, err
	}
	porCategoria, err := s.Vendas.ContarPor(ctx, base, venda.CampoCategory)
	if err != nil {
		return nil, err
	}
	m := &Metricas{SalesByStatus: porEstado, SalesByCategory: porCategoria}
	for _, n := range porEstado {
		m.TotalSales += n
	}

	ativas := base
	ativas.Status = venda.StatusAtivo
	telecom := base
	telecom.Category = venda.CategoriaTelecom
	comComissao := base
	comComissao.ComComissao = true
	previstas := comComissao
	previstas.Status = venda.StatusPendente
	ativasComComissao := comComissao
	ativasComComissao.Status = venda.StatusAtivo

	for _, sm := range []soma{
		{ativas, venda.CampoContractValue, &m.TotalContractValue},
		{comComissao, venda.CampoCommission, &m.TotalCommission},
		{telecom, venda.CampoContractValue, &m.TotalMensalidades},
		{previstas, venda.CampoCommission, &m.ComissoesPrevistas},
		{ativasComComissao, venda.CampoCommission, &m.ComissoesAtivas},
	} {
		total, err := s.Vendas.Somar(ctx, sm.filtro, sm.campo)
		if err != nil {
			return nil, err
		}
		*sm.dst = paraFloat(total)
	}

	esteMes := base
	esteMes.CreatedDe = utils.FormatarISO(utils.InicioDoMes(s.agora()))
	if m.SalesThisMonth, err = s.Vendas.Contar(ctx, esteMes); err != nil {
		return nil, err
	}
	return m, nil
}

// MesesDoPeriodo devolve n meses de calendário, do mais antigo ao que contém agora.
func MesesDoPeriodo(agora time.Time, n int) []Intervalo {
	inicio := utils.InicioDoMes(agora)
	out := make([]Intervalo, 0, n)
	for i := n - 1; i >= 0; i-- {
		ini := inicio.AddDate(0, -i, 0)
		out = append(out, Intervalo{Inicio: ini, Fim: ini.AddDate(0, 1, 0)})
	}
	return out
}

// LimitarMeses aplica o intervalo aceite a ?months=.
func LimitarMeses(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MesesMaximo:
		return MesesMaximo
	}
	return n
}

// EstatisticasMensais conta vendas criadas por mês e soma o valor das ativas.
func (s *Service) EstatisticasMensais(ctx context.Context, actor *auth.Identidade, meses int) ([]Mes, error) {
	base := venda.Escopo(actor, venda.Filtro{})
	out := []Mes{}
	for _, iv := range MesesDoPeriodo(s.agora(), LimitarMeses(meses)) {
		f := base
		f.CreatedDe = utils.FormatarISO(iv.Inicio)
		f.CreatedAntes = utils.FormatarISO(iv.Fim)

		n, err := s.Vendas.Contar(ctx, f)
		if err != nil {
			return nil, err
		}
		f.Status = venda.StatusAtivo
		valor, err := s.Vendas.Somar(ctx, f, venda.CampoContractValue)
		if err != nil {
			return nil, err
		}
		out = append(out, Mes{Month: iv.Rotulo(), Sales: n, Value: paraFloat(valor)})
	}
	return out, nil
}

func paraFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
