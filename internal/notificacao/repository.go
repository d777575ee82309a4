package notificacao

import (
	"context"

	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

type Repository interface {
	Criar(ctx context.Context, n *Notificacao) error
	Listar(ctx context.Context, userID string, limite int) ([]Notificacao, error)
	ContarNaoLidas(ctx context.Context, userID string) (int64, error)
	// MarcarLida só atua sobre notificações do próprio utilizador.
	MarcarLida(ctx context.Context, id, userID string) error
	MarcarTodasLidas(ctx context.Context, userID string) (int64, error)
}

var errNaoEncontrada = erros.NaoEncontrado("Notificação não encontrada")

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Criar(ctx context.Context, n *Notificacao) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repositoryImpl) Listar(ctx context.Context, userID string, limite int) ([]Notificacao, error) {
	list := []Notificacao{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limite).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ContarNaoLidas(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Notificacao{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *repositoryImpl) MarcarLida(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Model(&Notificacao{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *repositoryImpl) MarcarTodasLidas(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Notificacao{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
