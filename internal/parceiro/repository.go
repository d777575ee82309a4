package parceiro

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

type Repository interface {
	Criar(ctx context.Context, p *Parceiro) error
	BuscarPorID(ctx context.Context, id string) (*Parceiro, error)
	Listar(ctx context.Context, apenasAtivos bool) ([]Parceiro, error)
	Atualizar(ctx context.Context, id string, campos map[string]any) error
	Deletar(ctx context.Context, id string) error
}

var errNaoEncontrado = erros.NaoEncontrado("Parceiro não encontrado")

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Criar(ctx context.Context, p *Parceiro) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id string) (*Parceiro, error) {
	var p Parceiro
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNaoEncontrado
		}
		return nil, fmt.Errorf("buscar parceiro: %w", err)
	}
	return &p, nil
}

func (r *repositoryImpl) Listar(ctx context.Context, apenasAtivos bool) ([]Parceiro, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Limit(1000)
	if apenasAtivos {
		q = q.Where("active = ?", true)
	}
	list := []Parceiro{}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Parceiro{}).Where("id = ?", id).Updates(campos).Error
}

func (r *repositoryImpl) Deletar(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Parceiro{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrado
	}
	return nil
}
