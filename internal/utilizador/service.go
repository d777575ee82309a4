package utilizador

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/cache"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

const (
	AdminEmailInicial = "admin@leiritrix.pt"
	AdminNomeInicial  = "Administrador"
)

// Service concentra as regras de utilizadores e credenciais.
type Service struct {
	Repository Repository
	Vendas     venda.Repository
	Tokens     *auth.Tokens
	Cache      *cache.Cache
	Log        *zap.Logger

	// SenhaInicialAdmin vem de init.admin_password; vazia gera uma.
	SenhaInicialAdmin string

	agora func() time.Time
}

func NewService(repo Repository, vendas venda.Repository, tokens *auth.Tokens, c *cache.Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Repository: repo, Vendas: vendas, Tokens: tokens, Cache: c, Log: log, agora: time.Now}
}

func normalizarEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// identidadeCache é o que fica no Redis por utilizador.
type identidadeCache struct {
	ID     string    `json:"id"`
	Nome   string    `json:"name"`
	Email  string    `json:"email"`
	Role   auth.Role `json:"role"`
	Active bool      `json:"active"`
}

// ResolverIdentidade implementa auth.Resolvedor.
func (s *Service) ResolverIdentidade(ctx context.Context, userID string) (*auth.Identidade, error) {
	var c identidadeCache
	if !s.Cache.GetJSON(ctx, cache.IdentidadeKey(userID), &c) {
		u, err := s.Repository.BuscarPorID(ctx, userID)
		if err != nil {
			return nil, err
		}
		c = identidadeCache{ID: u.ID, Nome: u.Name, Email: u.Email, Role: u.Role, Active: u.Active}
		s.Cache.SetJSON(ctx, cache.IdentidadeKey(userID), c)
	}
	if !c.Active {
		return nil, erros.ContaDesativada()
	}
	return &auth.Identidade{ID: c.ID, Nome: c.Nome, Email: c.Email, Role: c.Role}, nil
}

func (s *Service) invalidar(ctx context.Context, id string) {
	s.Cache.Delete(ctx, cache.IdentidadeKey(id))
}

// Login verifica email/password e emite o token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.Repository.BuscarPorEmail(ctx, normalizarEmail(req.Email))
	if err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			return nil, erros.NaoAutenticado("Credenciais inválidas")
		}
		return nil, err
	}
	if !utils.VerificarSenha(u.PasswordHash, req.Password) {
		return nil, erros.NaoAutenticado("Credenciais inválidas")
	}
	if !u.Active {
		return nil, erros.ContaDesativada()
	}
	token, err := s.Tokens.GerarToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, erros.Interno(err)
	}
	s.Log.Info("login", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &LoginResponse{Token: token, User: u}, nil
}

// Registar cria um utilizador. Sem password, gera uma e obriga a alterá-la.
func (s *Service) Registar(ctx context.Context, req RegistarRequest) (*RegistoResponse, error) {
	email := normalizarEmail(req.Email)
	if err := s.emailLivre(ctx, email); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = auth.RoleVendedor
	}

	var senha, gerada string
	mustChange := false
	if req.Password != nil && *req.Password != "" {
		if err := utils.ValidarSenha(*req.Password); err != nil {
			return nil, err
		}
		senha = *req.Password
	} else {
		g, err := utils.GerarSenhaTemporaria()
		if err != nil {
			return nil, erros.Interno(err)
		}
		senha, gerada, mustChange = g, g, true
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, erros.Interno(err)
	}

	u := &Utilizador{
		ID:                 uuid.NewString(),
		Email:              email,
		Name:               strings.TrimSpace(req.Name),
		Role:               role,
		Active:             true,
		MustChangePassword: mustChange,
		PasswordHash:       hash,
		CreatedAt:          utils.FormatarISO(s.agora()),
	}
	if err := s.Repository.Criar(ctx, u); err != nil {
		return nil, err
	}
	s.Log.Info("utilizador criado", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &RegistoResponse{Utilizador: u, GeneratedPassword: gerada}, nil
}

// emailLivre falha com Conflict se o email já existir. Leitura seguida de
// escrita: dois registos simultâneos podem passar ambos esta verificação.
func (s *Service) emailLivre(ctx context.Context, email string) error {
	_, err := s.Repository.BuscarPorEmail(ctx, email)
	switch {
	case err == nil:
		return erros.Conflito("Email já registado")
	case errors.Is(err, erros.ErrNaoEncontrado):
		return nil
	default:
		return err
	}
}

func (s *Service) Listar(ctx context.Context, role auth.Role) ([]Utilizador, error) {
	if role != "" && !role.Valida() {
		return nil, erros.PedidoInvalido("Role inválido")
	}
	return s.Repository.Listar(ctx, role)
}

func (s *Service) BuscarPorID(ctx context.Context, id string) (*Utilizador, error) {
	return s.Repository.BuscarPorID(ctx, id)
}

// Atualizar aplica só os campos enviados.
func (s *Service) Atualizar(ctx context.Context, id string, req AtualizarRequest) (*Utilizador, error) {
	u, err := s.Repository.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	campos := map[string]any{}
	if req.Name != nil {
		campos["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		campos["role"] = *req.Role
	}
	if req.Email != nil {
		email := normalizarEmail(*req.Email)
		if email != u.Email {
			if err := s.emailLivre(ctx, email); err != nil {
				return nil, err
			}
		}
		campos["email"] = email
	}
	if req.Password != nil {
		if err := utils.ValidarSenha(*req.Password); err != nil {
			return nil, err
		}
		hash, err := utils.HashSenha(*req.Password)
		if err != nil {
			return nil, erros.Interno(err)
		}
		campos["password_hash"] = hash
	}

	if err := s.Repository.Atualizar(ctx, id, campos); err != nil {
		return nil, err
	}
	s.invalidar(ctx, id)
	return s.Repository.BuscarPorID(ctx, id)
}

// Deletar remove o utilizador; ninguém se pode eliminar a si próprio.
func (s *Service) Deletar(ctx context.Context, actor *auth.Identidade, id string) error {
	if actor != nil && actor.ID == id {
		return erros.OperacaoInvalida("Não pode eliminar a própria conta")
	}
	if err := s.Repository.Deletar(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx, id)
	s.Log.Info("utilizador eliminado", zap.String("user_id", id))
	return nil
}

// AlternarAtivo inverte o estado ativo e devolve o novo valor.
func (s *Service) AlternarAtivo(ctx context.Context, id string) (bool, error) {
	u, err := s.Repository.BuscarPorID(ctx, id)
	if err != nil {
		return false, err
	}
	novo := !u.Active
	if err := s.Repository.Atualizar(ctx, id, map[string]any{"active": novo}); err != nil {
		return false, err
	}
	s.invalidar(ctx, id)
	return novo, nil
}

// AlterarSenha troca a password do próprio utilizador.
func (s *Service) AlterarSenha(ctx context.Context, actor *auth.Identidade, req AlterarSenhaRequest) error {
	u, err := s.Repository.BuscarPorID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !utils.VerificarSenha(u.PasswordHash, req.CurrentPassword) {
		return erros.NaoAutenticado("Password atual incorreta")
	}
	if err := utils.ValidarSenha(req.NewPassword); err != nil {
		return err
	}
	hash, err := utils.HashSenha(req.NewPassword)
	if err != nil {
		return erros.Interno(err)
	}
	return s.Repository.Atualizar(ctx, u.ID, map[string]any{
		"password_hash":        hash,
		"must_change_password": false,
	})
}

// RedefinirSenha é a ação de admin; sem password explícita gera uma.
func (s *Service) RedefinirSenha(ctx context.Context, id string, req RedefinirSenhaRequest) (string, error) {
	if _, err := s.Repository.BuscarPorID(ctx, id); err != nil {
		return "", err
	}
	var senha, gerada string
	if req.NewPassword != nil && *req.NewPassword != "" {
		if err := utils.ValidarSenha(*req.NewPassword); err != nil {
			return "", err
		}
		senha = *req.NewPassword
	} else {
		g, err := utils.GerarSenhaTemporaria()
		if err != nil {
			return "", erros.Interno(err)
		}
		senha, gerada = g, g
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return "", erros.Interno(err)
	}
	err = s.Repository.Atualizar(ctx, id, map[string]any{
		"password_hash":        hash,
		"must_change_password": true,
	})
	return gerada, err
}

// Inicializar cria o primeiro admin se ainda não existir nenhum.
func (s *Service) Inicializar(ctx context.Context) (*InitResponse, error) {
	existe, err := s.Repository.ExisteComRole(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if existe {
		return &InitResponse{Message: "Sistema já inicializado"}, nil
	}

	senha := s.SenhaInicialAdmin
	if senha != "" {
		if err := utils.ValidarSenha(senha); err != nil {
			return nil, err
		}
	} else if senha, err = utils.GerarSenhaTemporaria(); err != nil {
		return nil, erros.Interno(err)
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, erros.Interno(err)
	}

	admin := &Utilizador{
		ID:                 uuid.NewString(),
		Email:              AdminEmailInicial,
		Name:               AdminNomeInicial,
		Role:               auth.RoleAdmin,
		Active:             true,
		MustChangePassword: true,
		PasswordHash:       hash,
		CreatedAt:          utils.FormatarISO(s.agora()),
	}
	if err := s.Repository.Criar(ctx, admin); err != nil {
		return nil, err
	}
	s.Log.Warn("sistema inicializado com admin por omissão", zap.String("email", AdminEmailInicial))
	return &InitResponse{Message: "Sistema inicializado", AdminEmail: AdminEmailInicial, AdminPassword: senha}, nil
}

// EstatisticasVendas resume as vendas do vendedor id.
func (s *Service) EstatisticasVendas(ctx context.Context, id string) (*EstatisticasVendas, error) {
	if _, err := s.Repository.BuscarPorID(ctx, id); err != nil {
		return nil, err
	}
	f := venda.Filtro{SellerID: id}
	porEstado, err := s.Vendas.ContarPor(ctx, f, venda.CampoStatus)
	if err != nil {
		return nil, err
	}
	total, err := s.Vendas.Somar(ctx, f, venda.CampoContractValue)
	if err != nil {
		return nil, err
	}

	st := &EstatisticasVendas{
		Active:      porEstado[string(venda.StatusAtivo)],
		Pending:     porEstado[string(venda.StatusPendente)],
		Negotiating: porEstado[string(venda.StatusEmNegociacao)],
		Lost:        porEstado[string(venda.StatusPerdido)],
		TotalValue:  total.InexactFloat64(),
	}
	for _, n := range porEstado {
		st.Total += n
	}
	return st, nil
}

// ListarGestoresAtivos devolve os ids de admin/backoffice ativos.
func (s *Service) ListarGestoresAtivos(ctx context.Context) ([]string, error) {
	list, err := s.Repository.ListarAtivosPorRoles(ctx, auth.AdminOuBackoffice...)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, u := range list {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
