package utilizador

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// Handler expõe o Service por HTTP
type Handler struct {
	Service *Service
}

// NewHandler retorna um handler inicializado
func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Inicializar cria o admin por omissão (POST /init, público)
func (h *Handler) Inicializar(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Inicializar(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resp)
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resp)
}

// Registar cadastra novo utilizador (admin)
func (h *Handler) Registar(w http.ResponseWriter, r *http.Request) {
	var req RegistarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	resp, err := h.Service.Registar(r.Context(), req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resp)
}

// Me devolve o perfil de quem faz o pedido
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentidadeDe(r.Context())
	if id == nil {
		utils.ResponderErro(w, r, erros.NaoAutenticado("Token ausente"))
		return
	}
	u, err := h.Service.BuscarPorID(r.Context(), id.ID)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, u)
}

// AlterarSenha troca a password do próprio utilizador
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req AlterarSenhaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := h.Service.AlterarSenha(r.Context(), auth.IdentidadeDe(r.Context()), req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverMensagem(w, "Password alterada")
}

// Listar retorna os utilizadores, opcionalmente filtrados por ?role=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Listar(r.Context(), auth.Role(r.URL.Query().Get("role")))
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

// BuscarPorID retorna um utilizador pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.BuscarPorID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, u)
}

// Atualizar altera dados de um utilizador existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req AtualizarRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	u, err := h.Service.Atualizar(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, u)
}

// Deletar remove um utilizador
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Deletar(r.Context(), auth.IdentidadeDe(r.Context()), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverMensagem(w, "Utilizador eliminado")
}

// AlternarAtivo ativa/desativa a conta
func (h *Handler) AlternarAtivo(w http.ResponseWriter, r *http.Request) {
	ativo, err := h.Service.AlternarAtivo(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, AtivoResponse{Message: "Status atualizado", Active: ativo})
}

// RedefinirSenha define nova password (admin)
func (h *Handler) RedefinirSenha(w http.ResponseWriter, r *http.Request) {
	var req RedefinirSenhaRequest
	if r.ContentLength != 0 {
		if err := utils.DecodificarJSON(r, &req); err != nil {
			utils.ResponderErro(w, r, err)
			return
		}
	}
	gerada, err := h.Service.RedefinirSenha(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, SenhaResponse{Message: "Password redefinida", GeneratedPassword: gerada})
}

// EstatisticasVendas resume as vendas de um vendedor
func (h *Handler) EstatisticasVendas(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.EstatisticasVendas(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, r, err)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, st)
}
