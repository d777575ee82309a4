package venda

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Potencias responde a GET /config/potencias (público)
func (h *Handler) Potencias(w http.ResponseWriter, r *http.Request) {
	utils.EscreverJSON(w, http.StatusOK, Potencias)
}

// Criar regista uma venda em nome de quem faz o pedido
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	v, err := h.Service.Criar(r.Context(), auth.IdentidadeDe(r.Context()), req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, v)
}

// Listar aceita ?status, category, seller_id, partner_id e search
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, err := FiltroDaQuery(r)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	list, err := h.Service.Listar(r.Context(), auth.IdentidadeDe(r.Context()), f)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Buscar(r.Context(), auth.IdentidadeDe(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, v)
}

func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req AtualizarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	v, err := h.Service.Atualizar(r.Context(), auth.IdentidadeDe(r.Context()), mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, v)
}

func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Deletar(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverMensagem(w, "Venda eliminada")
}

// AtribuirComissao responde a PUT /sales/{id}/commission
func (h *Handler) AtribuirComissao(w http.ResponseWriter, r *http.Request) {
	var req ComissaoRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	v, err := h.Service.AtribuirComissao(r.Context(), auth.IdentidadeDe(r.Context()), mux.Vars(r)["id"], *req.Commission)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, v)
}

// FiltroDaQuery lê os filtros comuns de listagem e relatório.
func FiltroDaQuery(r *http.Request) (Filtro, error) {
	q := r.URL.Query()
	f := Filtro{
		Status:    Status(q.Get("status")),
		Category:  Categoria(q.Get("category")),
		SellerID:  q.Get("seller_id"),
		PartnerID: q.Get("partner_id"),
		Search:    q.Get("search"),
	}
	if f.Status != "" && !f.Status.Valido() {
		return f, erros.PedidoInvalido("Status inválido")
	}
	if f.Category != "" && !f.Category.Valida() {
		return f, erros.PedidoInvalido("Categoria inválida")
	}
	return f, nil
}
