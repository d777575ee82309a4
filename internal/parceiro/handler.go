package parceiro

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Criar cadastra um parceiro
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	p, err := h.Service.Criar(r.Context(), req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, p)
}

// ListarAtivos responde a GET /partners
func (h *Handler) ListarAtivos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListarAtivos(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

// ListarTodos responde a GET /partners/all
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListarTodos(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.BuscarPorID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, p)
}

func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req AtualizarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	p, err := h.Service.Atualizar(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, p)
}

func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Service.Deletar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverMensagem(w, msg)
}

func (h *Handler) AlternarAtivo(w http.ResponseWriter, r *http.Request) {
	ativo, err := h.Service.AlternarAtivo(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, AtivoResponse{Message: "Status atualizado", Active: ativo})
}
