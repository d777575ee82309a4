package relatorio

import (
	"net/http"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Vendas responde a GET /reports/sales (admin/backoffice)
func (h *Handler) Vendas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := Pedido{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Category:  venda.Categoria(q.Get("category")),
		Status:    venda.Status(q.Get("status")),
		SellerID:  q.Get("seller_id"),
		PartnerID: q.Get("partner_id"),
	}
	if p.Status != "" && !p.Status.Valido() {
		utils.ResponderErro(w, r, erros.PedidoInvalido("Status inválido"))
		return
	}
	if p.Category != "" && !p.Category.Valida() {
		utils.ResponderErro(w, r, erros.PedidoInvalido("Categoria inválida"))
		return
	}
	rel, err := h.Service.Gerar(r.Context(), p)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, rel)
}
