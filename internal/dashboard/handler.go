package dashboard

import (
	"net/http"
	"strconv"

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

func (h *Handler) Metricas(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.Metricas(r.Context(), auth.IdentidadeDe(r.Context()))
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, m)
}

// EstatisticasMensais responde a GET /dashboard/monthly-stats?months=N
func (h *Handler) EstatisticasMensais(w http.ResponseWriter, r *http.Request) {
	meses := MesesPorOmissao
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponderErro(w, r, erros.PedidoInvalido("months deve ser um número inteiro"))
			return
		}
		meses = n
	}
	stats, err := h.Service.EstatisticasMensais(r.Context(), auth.IdentidadeDe(r.Context()), meses)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, stats)
}
