package parceiro

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// ContadorVendas conta as vendas que referenciam um parceiro.
type ContadorVendas interface {
	ContarVendasDoParceiro(ctx context.Context, partnerID string) (int64, error)
}

type Service struct {
	Repository Repository
	Vendas     ContadorVendas
	Log        *zap.Logger

	agora func() time.Time
}

func NewService(repo Repository, vendas ContadorVendas, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Repository: repo, Vendas: vendas, Log: log, agora: time.Now}
}

func (s *Service) Criar(ctx context.Context, req CriarRequest) (*Parceiro, error) {
	if err := utils.Validar(req); err != nil {
		return nil, err
	}
	p := &Parceiro{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Active:        true,
		CreatedAt:     utils.FormatarISO(s.agora()),
	}
	if err := s.Repository.Criar(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListarAtivos devolve os parceiros disponíveis para novas vendas.
func (s *Service) ListarAtivos(ctx context.Context) ([]Parceiro, error) {
	return s.Repository.Listar(ctx, true)
}

func (s *Service) ListarTodos(ctx context.Context) ([]Parceiro, error) {
	return s.Repository.Listar(ctx, false)
}

func (s *Service) BuscarPorID(ctx context.Context, id string) (*Parceiro, error) {
	return s.Repository.BuscarPorID(ctx, id)
}

func (s *Service) Atualizar(ctx context.Context, id string, req AtualizarRequest) (*Parceiro, error) {
	if err := utils.Validar(req); err != nil {
		return nil, err
	}
	if _, err := s.Repository.BuscarPorID(ctx, id); err != nil {
		return nil, err
	}

	campos := map[string]any{}
	if req.Name != nil {
		campos["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		campos["email"] = *req.Email
	}
	if req.ContactPerson != nil {
		campos["contact_person"] = *req.ContactPerson
	}
	if req.Phone != nil {
		campos["phone"] = *req.Phone
	}
	if err := s.Repository.Atualizar(ctx, id, campos); err != nil {
		return nil, err
	}
	return s.Repository.BuscarPorID(ctx, id)
}

// Deletar apaga o parceiro, ou apenas o desativa se houver vendas associadas.
// Devolve a mensagem a mostrar.
func (s *Service) Deletar(ctx context.Context, id string) (string, error) {
	if _, err := s.Repository.BuscarPorID(ctx, id); err != nil {
		return "", err
	}
	n, err := s.Vendas.ContarVendasDoParceiro(ctx, id)
	if err != nil {
		return "", err
	}
	if n > 0 {
		if err := s.Repository.Atualizar(ctx, id, map[string]any{"active": false}); err != nil {
			return "", err
		}
		s.Log.Info("parceiro desativado em vez de eliminado",
			zap.String("partner_id", id), zap.Int64("vendas", n))
		return "Parceiro desativado (tem vendas associadas)", nil
	}
	if err := s.Repository.Deletar(ctx, id); err != nil {
		return "", err
	}
	return "Parceiro eliminado", nil
}

func (s *Service) AlternarAtivo(ctx context.Context, id string) (bool, error) {
	p, err := s.Repository.BuscarPorID(ctx, id)
	if err != nil {
		return false, err
	}
	novo := !p.Active
	if err := s.Repository.Atualizar(ctx, id, map[string]any{"active": novo}); err != nil {
		return false, err
	}
	return novo, nil
}
