package alerta

import (
	"net/http"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Fidelizacao responde a GET /alerts/loyalty
func (h *Handler) Fidelizacao(w http.ResponseWriter, r *http.Request) {
	alertas, err := h.Service.Fidelizacao(r.Context(), auth.IdentidadeDe(r.Context()))
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, alertas)
}
