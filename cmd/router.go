package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/alerta"
	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/dashboard"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/middleware"
	"github.com/hugoalbmartins/Leiritrix/internal/notificacao"
	"github.com/hugoalbmartins/Leiritrix/internal/parceiro"
	"github.com/hugoalbmartins/Leiritrix/internal/relatorio"
	"github.com/hugoalbmartins/Leiritrix/internal/utilizador"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

const versaoAPI = "1.1.0"

type app struct {
	Log         *zap.Logger
	Auth        *auth.Middleware
	Registry    *prometheus.Registry
	CorsOrigins []string
	Ping        func(ctx context.Context) error

	Utilizadores *utilizador.Handler
	Parceiros    *parceiro.Handler
	Vendas       *venda.Handler
	Dashboard    *dashboard.Handler
	Relatorios   *relatorio.Handler
	Alertas      *alerta.Handler
	Notificacoes *notificacao.Handler
}

// gate aplica o controlo de papéis a uma única rota.
func gate(roles []auth.Role, h http.HandlerFunc) http.Handler {
	return auth.RequireRoles(roles...)(h)
}

func (a *app) router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponderErro(w, req, erros.NaoEncontrado("Rota não encontrada"))
	})
	r.Use(middleware.NewMetricas(a.Registry).Middleware)

	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", a.saude).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Rotas públicas
	api.HandleFunc("/", raiz).Methods(http.MethodGet)
	api.HandleFunc("/init", a.Utilizadores.Inicializar).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", a.Utilizadores.Login).Methods(http.MethodPost)
	api.HandleFunc("/config/potencias", a.Vendas.Potencias).Methods(http.MethodGet)

	priv := api.NewRoute().Subrouter()
	priv.Use(a.Auth.Autenticar)

	// Autenticação e utilizadores
	priv.HandleFunc("/auth/me", a.Utilizadores.Me).Methods(http.MethodGet)
	priv.HandleFunc("/auth/change-password", a.Utilizadores.AlterarSenha).Methods(http.MethodPost)
	priv.Handle("/auth/register", gate(auth.ApenasAdmin, a.Utilizadores.Registar)).Methods(http.MethodPost)
	priv.Handle("/users", gate(auth.ApenasAdmin, a.Utilizadores.Listar)).Methods(http.MethodGet)
	priv.Handle("/users/{id}", gate(auth.ApenasAdmin, a.Utilizadores.BuscarPorID)).Methods(http.MethodGet)
	priv.Handle("/users/{id}", gate(auth.ApenasAdmin, a.Utilizadores.Atualizar)).Methods(http.MethodPut)
	priv.Handle("/users/{id}", gate(auth.ApenasAdmin, a.Utilizadores.Deletar)).Methods(http.MethodDelete)
	priv.Handle("/users/{id}/toggle-active", gate(auth.ApenasAdmin, a.Utilizadores.AlternarAtivo)).Methods(http.MethodPut)
	priv.Handle("/users/{id}/reset-password", gate(auth.ApenasAdmin, a.Utilizadores.RedefinirSenha)).Methods(http.MethodPost)
	priv.Handle("/users/{id}/sales-stats", gate(auth.ApenasAdmin, a.Utilizadores.EstatisticasVendas)).Methods(http.MethodGet)

	// Parceiros; /partners/all antes de /partners/{id}
	priv.Handle("/partners", gate(auth.AdminOuBackoffice, a.Parceiros.Criar)).Methods(http.MethodPost)
	priv.HandleFunc("/partners", a.Parceiros.ListarAtivos).Methods(http.MethodGet)
	priv.Handle("/partners/all", gate(auth.AdminOuBackoffice, a.Parceiros.ListarTodos)).Methods(http.MethodGet)
	priv.HandleFunc("/partners/{id}", a.Parceiros.BuscarPorID).Methods(http.MethodGet)
	priv.Handle("/partners/{id}", gate(auth.AdminOuBackoffice, a.Parceiros.Atualizar)).Methods(http.MethodPut)
	priv.Handle("/partners/{id}", gate(auth.AdminOuBackoffice, a.Parceiros.Deletar)).Methods(http.MethodDelete)
	priv.Handle("/partners/{id}/toggle-active", gate(auth.AdminOuBackoffice, a.Parceiros.AlternarAtivo)).Methods(http.MethodPut)

	// Vendas
	priv.HandleFunc("/sales", a.Vendas.Criar).Methods(http.MethodPost)
	priv.HandleFunc("/sales", a.Vendas.Listar).Methods(http.MethodGet)
	priv.HandleFunc("/sales/{id}", a.Vendas.BuscarPorID).Methods(http.MethodGet)
	priv.HandleFunc("/sales/{id}", a.Vendas.Atualizar).Methods(http.MethodPut)
	priv.Handle("/sales/{id}", gate(auth.AdminOuBackoffice, a.Vendas.Deletar)).Methods(http.MethodDelete)
	priv.Handle("/sales/{id}/commission", gate(auth.AdminOuBackoffice, a.Vendas.AtribuirComissao)).Methods(http.MethodPut)

	// Agregações
	priv.HandleFunc("/dashboard/metrics", a.Dashboard.Metricas).Methods(http.MethodGet)
	priv.HandleFunc("/dashboard/monthly-stats", a.Dashboard.EstatisticasMensais).Methods(http.MethodGet)
	priv.HandleFunc("/alerts/loyalty", a.Alertas.Fidelizacao).Methods(http.MethodGet)
	priv.Handle("/reports/sales", gate(auth.AdminOuBackoffice, a.Relatorios.Vendas)).Methods(http.MethodGet)

	// Notificações
	priv.HandleFunc("/notifications", a.Notificacoes.Listar).Methods(http.MethodGet)
	priv.HandleFunc("/notifications/unread-count", a.Notificacoes.ContarNaoLidas).Methods(http.MethodGet)
	priv.HandleFunc("/notifications/read-all", a.Notificacoes.MarcarTodasLidas).Methods(http.MethodPut)
	priv.HandleFunc("/notifications/{id}/read", a.Notificacoes.MarcarLida).Methods(http.MethodPut)
	priv.HandleFunc("/ws/notifications", a.Notificacoes.WebSocket).Methods(http.MethodGet)

	var h http.Handler = middleware.Logging(a.Log)(r)
	h = middleware.Recuperar(a.Log)(h)

	return cors.New(cors.Options{
		AllowedOrigins:   a.CorsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(h)
}

func raiz(w http.ResponseWriter, _ *http.Request) {
	utils.EscreverJSON(w, http.StatusOK, map[string]string{"message": "CRM Leiritrix API", "version": versaoAPI})
}

func (a *app) saude(w http.ResponseWriter, r *http.Request) {
	if err := a.Ping(r.Context()); err != nil {
		a.Log.Warn("healthcheck falhou", zap.Error(err))
		utils.ResponderErro(w, r, erros.Interno(err))
		return
	}
	utils.EscreverJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
