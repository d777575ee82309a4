package venda

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/parceiro"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// LimiteListagem é o máximo de vendas devolvidas por GET /sales.
const LimiteListagem = 1000

// Notificador recebe os eventos de venda. Falhas ficam do lado do
// notificador; nunca interrompem a operação.
type Notificador interface {
	VendaCriada(ctx context.Context, v *Venda)
	EstadoAlterado(ctx context.Context, v *Venda)
}

type semNotificacoes struct{}

func (semNotificacoes) VendaCriada(context.Context, *Venda)    {}
func (semNotificacoes) EstadoAlterado(context.Context, *Venda) {}

type Service struct {
	Repository  Repository
	Parceiros   parceiro.Repository
	Notificador Notificador
	Log         *zap.Logger

	agora func() time.Time
}

func NewService(repo Repository, parceiros parceiro.Repository, n Notificador, log *zap.Logger) *Service {
	if n == nil {
		n = semNotificacoes{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Repository: repo, Parceiros: parceiros, Notificador: n, Log: log, agora: time.Now}
}

// Criar regista uma venda em negociação para o vendedor actor.
func (s *Service) Criar(ctx context.Context, actor *auth.Identidade, req CriarRequest) (*Venda, error) {
	if err := utils.Validar(req); err != nil {
		return nil, err
	}
	p, err := s.Parceiros.BuscarPorID(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			return nil, erros.ParceiroInvalido()
		}
		return nil, err
	}
	if !p.Active {
		return nil, erros.ParceiroInvalido()
	}

	agora := utils.FormatarISO(s.agora())
	v := &Venda{
		ID:            uuid.NewString(),
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		ClientNIF:     req.ClientNIF,
		Category:      req.Category,
		SaleType:      req.SaleType,
		PartnerID:     p.ID,
		PartnerName:   p.Name,
		ContractValue: req.ContractValue,
		LoyaltyMonths: req.LoyaltyMonths,
		Notes:         req.Notes,
		EnergyType:    req.EnergyType,
		CPE:           req.CPE,
		Potencia:      req.Potencia,
		CUI:           req.CUI,
		Escalao:       req.Escalao,
		REQ:           req.REQ,
		Status:        StatusEmNegociacao,
		SellerID:      actor.ID,
		SellerName:    actor.Nome,
		CreatedAt:     agora,
		UpdatedAt:     agora,
	}
	if err := s.Repository.Criar(ctx, v); err != nil {
		return nil, err
	}
	s.Log.Info("venda criada",
		zap.String("sale_id", v.ID),
		zap.String("seller_id", v.SellerID),
		zap.String("category", string(v.Category)))
	s.Notificador.VendaCriada(ctx, v)
	return v, nil
}

// Listar aplica o filtro; vendedores só veem as suas vendas.
func (s *Service) Listar(ctx context.Context, actor *auth.Identidade, f Filtro) ([]Venda, error) {
	f = Escopo(actor, f)
	return s.Repository.Listar(ctx, f, OrdemRecentes, LimiteListagem)
}

// Escopo força seller_id = actor para vendedores.
func Escopo(actor *auth.Identidade, f Filtro) Filtro {
	if actor.EVendedor() {
		f.SellerID = actor.ID
	}
	return f
}

// Buscar devolve a venda; NotFound tem prioridade sobre Forbidden.
func (s *Service) Buscar(ctx context.Context, actor *auth.Identidade, id string) (*Venda, error) {
	v, err := s.Repository.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.EVendedor() && v.SellerID != actor.ID {
		return nil, erros.Proibido("Acesso negado")
	}
	return v, nil
}

// Atualizar aplica o patch limitado e devolve a venda atualizada.
func (s *Service) Atualizar(ctx context.Context, actor *auth.Identidade, id string, req AtualizarRequest) (*Venda, error) {
	if err := utils.Validar(req); err != nil {
		return nil, err
	}
	atual, err := s.Buscar(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	campos, err := MontarPatch(actor, atual, req, s.agora())
	if err != nil {
		return nil, err
	}
	if err := s.Repository.Atualizar(ctx, id, campos); err != nil {
		return nil, err
	}
	v, err := s.Repository.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && *req.Status != atual.Status {
		s.Log.Info("estado de venda alterado",
			zap.String("sale_id", id),
			zap.String("de", string(atual.Status)),
			zap.String("para", string(v.Status)))
		s.Notificador.EstadoAlterado(ctx, v)
	}
	return v, nil
}

// Deletar remove a venda definitivamente.
func (s *Service) Deletar(ctx context.Context, id string) error {
	if err := s.Repository.Deletar(ctx, id); err != nil {
		return err
	}
	s.Log.Info("venda eliminada", zap.String("sale_id", id))
	return nil
}

// AtribuirComissao grava a comissão e quem a atribuiu.
func (s *Service) AtribuirComissao(ctx context.Context, actor *auth.Identidade, id string, valor float64) (*Venda, error) {
	if !actor.Gestor() {
		return nil, erros.Proibido("Acesso negado")
	}
	if _, err := s.Repository.BuscarPorID(ctx, id); err != nil {
		return nil, err
	}
	agora := s.agora().UTC()
	campos := map[string]any{"updated_at": utils.FormatarISO(agora)}
	marcarComissao(campos, actor, valor, agora)
	if err := s.Repository.Atualizar(ctx, id, campos); err != nil {
		return nil, err
	}
	return s.Repository.BuscarPorID(ctx, id)
}
