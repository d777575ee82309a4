package notificacao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

// LimiteListagem é o máximo de notificações devolvidas.
const LimiteListagem = 100

// Destinatarios devolve os ids dos admin/backoffice ativos.
type Destinatarios interface {
	ListarGestoresAtivos(ctx context.Context) ([]string, error)
}

// Service grava e distribui as notificações de vendas. Implementa
// venda.Notificador.
type Service struct {
	Repository    Repository
	Destinatarios Destinatarios
	Hub           *Hub
	Webhook       *Webhook
	Log           *zap.Logger

	agora func() time.Time
}

var _ venda.Notificador = (*Service)(nil)

func NewService(repo Repository, dest Destinatarios, hub *Hub, webhook *Webhook, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Repository: repo, Destinatarios: dest, Hub: hub, Webhook: webhook, Log: log, agora: time.Now}
}

type mensagem struct {
	titulo, texto string
}

// VendaCriada avisa os gestores e o vendedor de uma nova venda.
func (s *Service) VendaCriada(ctx context.Context, v *venda.Venda) {
	s.distribuir(ctx, v, TipoVendaCriada,
		mensagem{"Nova venda registada", fmt.Sprintf("Nova venda criada: %s - %s", v.ClientName, v.Category)},
		mensagem{"Nova venda registada", fmt.Sprintf("A sua venda foi registada: %s", v.ClientName)},
	)
}

// EstadoAlterado avisa os gestores e o vendedor da mudança de estado.
func (s *Service) EstadoAlterado(ctx context.Context, v *venda.Venda) {
	s.distribuir(ctx, v, TipoEstadoAlterado,
		mensagem{"Estado de venda alterado", fmt.Sprintf("Venda %s agora está: %s", v.ClientName, v.Status)},
		mensagem{"Estado da sua venda alterado", fmt.Sprintf("A venda %s agora está: %s", v.ClientName, v.Status)},
	)
}

// distribuir envia paraGestores a cada gestor ativo e paraVendedor ao
// vendedor, quando este não é um dos gestores.
func (s *Service) distribuir(ctx context.Context, v *venda.Venda, tipo Tipo, paraGestores, paraVendedor mensagem) {
	gestores, err := s.Destinatarios.ListarGestoresAtivos(ctx)
	if err != nil {
		s.Log.Error("erro ao obter destinatários", zap.String("sale_id", v.ID), zap.Error(err))
		return
	}

	vendedorIncluido := false
	for _, id := range gestores {
		if id == v.SellerID {
			vendedorIncluido = true
		}
		s.enviar(ctx, id, v.ID, tipo, paraGestores)
	}
	if v.SellerID != "" && !vendedorIncluido {
		s.enviar(ctx, v.SellerID, v.ID, tipo, paraVendedor)
	}
}

func (s *Service) enviar(ctx context.Context, userID, saleID string, tipo Tipo, m mensagem) {
	n := Notificacao{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     m.titulo,
		Message:   m.texto,
		Type:      tipo,
		SaleID:    saleID,
		CreatedAt: utils.FormatarISO(s.agora()),
	}
	if err := s.Repository.Criar(ctx, &n); err != nil {
		s.Log.Error("erro ao gravar notificação",
			zap.String("user_id", userID),
			zap.String("sale_id", saleID),
			zap.Error(err))
		return
	}
	s.Hub.Publicar(n)
	s.Webhook.EnviarEmSegundoPlano(ctx, n)
}

func (s *Service) Listar(ctx context.Context, userID string) ([]Notificacao, error) {
	return s.Repository.Listar(ctx, userID, LimiteListagem)
}

func (s *Service) ContarNaoLidas(ctx context.Context, userID string) (int64, error) {
	return s.Repository.ContarNaoLidas(ctx, userID)
}

func (s *Service) MarcarLida(ctx context.Context, userID, id string) error {
	return s.Repository.MarcarLida(ctx, id, userID)
}

func (s *Service) MarcarTodasLidas(ctx context.Context, userID string) (int64, error) {
	return s.Repository.MarcarTodasLidas(ctx, userID)
}
