package utilizador

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

type Repository interface {
	Criar(ctx context.Context, u *Utilizador) error
	BuscarPorID(ctx context.Context, id string) (*Utilizador, error)
	BuscarPorEmail(ctx context.Context, email string) (*Utilizador, error)
	Listar(ctx context.Context, role auth.Role) ([]Utilizador, error)
	ListarAtivosPorRoles(ctx context.Context, roles ...auth.Role) ([]Utilizador, error)
	Atualizar(ctx context.Context, id string, campos map[string]any) error
	Deletar(ctx context.Context, id string) error
	ExisteComRole(ctx context.Context, role auth.Role) (bool, error)
}

var errNaoEncontrado = erros.NaoEncontrado("Utilizador não encontrado")

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Criar(ctx context.Context, u *Utilizador) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id string) (*Utilizador, error) {
	return r.buscar(ctx, "id = ?", id)
}

func (r *repositoryImpl) BuscarPorEmail(ctx context.Context, email string) (*Utilizador, error) {
	return r.buscar(ctx, "email = ?", email)
}

func (r *repositoryImpl) buscar(ctx context.Context, cond string, v any) (*Utilizador, error) {
	var u Utilizador
	if err := r.db.WithContext(ctx).Where(cond, v).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNaoEncontrado
		}
		return nil, fmt.Errorf("buscar utilizador: %w", err)
	}
	return &u, nil
}

func (r *repositoryImpl) Listar(ctx context.Context, role auth.Role) ([]Utilizador, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Limit(1000)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	list := []Utilizador{}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarAtivosPorRoles(ctx context.Context, roles ...auth.Role) ([]Utilizador, error) {
	list := []Utilizador{}
	err := r.db.WithContext(ctx).
		Where("active = ? AND role IN ?", true, roles).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Utilizador{}).Where("id = ?", id).Updates(campos).Error
}

func (r *repositoryImpl) Deletar(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Utilizador{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrado
	}
	return nil
}

func (r *repositoryImpl) ExisteComRole(ctx context.Context, role auth.Role) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Utilizador{}).Where("role = ?", role).Limit(1).Count(&n).Error
	return n > 0, err
}
