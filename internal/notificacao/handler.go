package notificacao

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Listar(r.Context(), auth.IdentidadeDe(r.Context()).ID)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

func (h *Handler) ContarNaoLidas(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.ContarNaoLidas(r.Context(), auth.IdentidadeDe(r.Context()).ID)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, ContagemResponse{Count: n})
}

func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	err := h.Service.MarcarLida(r.Context(), auth.IdentidadeDe(r.Context()).ID, mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverMensagem(w, "Notificação marcada como lida")
}

func (h *Handler) MarcarTodasLidas(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.MarcarTodasLidas(r.Context(), auth.IdentidadeDe(r.Context()).ID)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, ContagemResponse{Count: n})
}

// WebSocket mantém a ligação de GET /ws/notifications; o token vem em ?token=.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentidadeDe(r.Context())
	if err := h.Service.Hub.Servir(w, r, id.ID); err != nil {
		h.Service.Log.Warn("upgrade websocket falhou", zap.String("user_id", id.ID), zap.Error(err))
	}
}
