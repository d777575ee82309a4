package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/alerta"
	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/cache"
	"github.com/hugoalbmartins/Leiritrix/internal/config"
	"github.com/hugoalbmartins/Leiritrix/internal/dashboard"
	"github.com/hugoalbmartins/Leiritrix/internal/logger"
	"github.com/hugoalbmartins/Leiritrix/internal/notificacao"
	"github.com/hugoalbmartins/Leiritrix/internal/parceiro"
	"github.com/hugoalbmartins/Leiritrix/internal/relatorio"
	"github.com/hugoalbmartins/Leiritrix/internal/utilizador"
	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

// repositorios agrupa os repositórios do backend escolhido.
type repositorios struct {
	utilizadores utilizador.Repository
	parceiros    parceiro.Repository
	vendas       venda.Repository
	notificacoes notificacao.Repository
}

func abrirRepositorios(ctx context.Context, conn *db.Conexao) (*repositorios, error) {
	if conn.Driver == db.DriverMongo {
		return &repositorios{
			utilizadores: utilizador.NewMongoRepository(conn.Mongo),
			parceiros:    parceiro.NewMongoRepository(conn.Mongo),
			vendas:       venda.NewMongoRepository(conn.Mongo),
			notificacoes: notificacao.NewMongoRepository(conn.Mongo),
		}, nil
	}

	// AutoMigrate para todos os modelos
	if err := conn.Gorm.WithContext(ctx).AutoMigrate(
		&utilizador.Utilizador{},
		&parceiro.Parceiro{},
		&venda.Venda{},
		&notificacao.Notificacao{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &repositorios{
		utilizadores: utilizador.NewRepository(conn.Gorm),
		parceiros:    parceiro.NewRepository(conn.Gorm),
		vendas:       venda.NewRepository(conn.Gorm),
		notificacoes: notificacao.NewRepository(conn.Gorm),
	}, nil
}

// novaApp liga repositórios, serviços e handlers.
func novaApp(ctx context.Context, cfg *config.Config, conn *db.Conexao, c *cache.Cache, log *zap.Logger) (*app, error) {
	repos, err := abrirRepositorios(ctx, conn)
	if err != nil {
		return nil, err
	}

	validade := time.Duration(cfg.JWT.ExpirationHours) * time.Hour
	tokens, err := auth.NewTokens(cfg.JWT.Secret, validade)
	if err != nil {
		return nil, err
	}

	utilizadores := utilizador.NewService(repos.utilizadores, repos.vendas, tokens, c, log.Named("utilizador"))
	utilizadores.SenhaInicialAdmin = cfg.Init.AdminPassword

	hub := notificacao.NewHub(log.Named("ws"))
	webhook := notificacao.NewWebhook(cfg.Notification.WebhookURL, log.Named("webhook"))
	notificacoes := notificacao.NewService(repos.notificacoes, utilizadores, hub, webhook, log.Named("notificacao"))

	parceiros := parceiro.NewService(repos.parceiros, venda.NewContadorParceiro(repos.vendas), log.Named("parceiro"))
	vendas := venda.NewService(repos.vendas, repos.parceiros, notificacoes, log.Named("venda"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &app{
		Log:          log,
		Auth:         auth.NewMiddleware(tokens, utilizadores),
		Registry:     reg,
		CorsOrigins:  cfg.Server.CorsOrigins,
		Ping:         conn.Ping,
		Utilizadores: utilizador.NewHandler(utilizadores),
		Parceiros:    parceiro.NewHandler(parceiros),
		Vendas:       venda.NewHandler(vendas),
		Dashboard:    dashboard.NewHandler(dashboard.NewService(repos.vendas)),
		Relatorios:   relatorio.NewHandler(relatorio.NewService(repos.vendas)),
		Alertas:      alerta.NewHandler(alerta.NewService(repos.vendas)),
		Notificacoes: notificacao.NewHandler(notificacoes),
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erro ao carregar configuração:", err)
		os.Exit(1)
	}

	log := logger.NewForEnvironment(cfg.App.Env, cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("servidor terminou com erro", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.GetDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("erro ao conectar na base de dados: %w", err)
	}
	log.Info("base de dados ligada", zap.String("driver", conn.Driver))
	defer fechar(conn, cfg.Server.ShutdownTimeout, log)

	c := cache.Desligada()
	if cfg.Redis.Enabled {
		c, err = cache.Init(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			log.Warn("redis indisponível, a continuar sem cache", zap.Error(err))
		}
	}

	a, err := novaApp(ctx, cfg, conn, c, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	erroServidor := make(chan error, 1)
	go func() {
		log.Info("servidor a correr", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			erroServidor <- err
		}
		close(erroServidor)
	}()

	select {
	case err := <-erroServidor:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("sinal recebido, a encerrar")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown do servidor", zap.Error(err))
	}
	if err := c.Close(); err != nil {
		log.Warn("fecho do redis", zap.Error(err))
	}
	return nil
}

type fechavel interface {
	Fechar(ctx context.Context) error
}

// fechar liberta a base de dados em qualquer saída de run.
func fechar(f fechavel, timeout time.Duration, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := f.Fechar(ctx); err != nil {
		log.Error("fecho da base de dados", zap.Error(err))
	}
}
