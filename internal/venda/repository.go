package venda

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

// Repository é o armazenamento de vendas. Contar, ContarPor e Somar
// servem os agregados do dashboard e dos relatórios.
type Repository interface {
	Criar(ctx context.Context, v *Venda) error
	BuscarPorID(ctx context.Context, id string) (*Venda, error)
	Listar(ctx context.Context, f Filtro, ordem Ordem, limite int) ([]Venda, error)
	Atualizar(ctx context.Context, id string, campos map[string]any) error
	Deletar(ctx context.Context, id string) error

	Contar(ctx context.Context, f Filtro) (int64, error)
	ContarPor(ctx context.Context, f Filtro, campo string) (map[string]int64, error)
	Somar(ctx context.Context, f Filtro, campo string) (decimal.Decimal, error)
}

var errNaoEncontrada = erros.NaoEncontrado("Venda não encontrada")

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Criar(ctx context.Context, v *Venda) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id string) (*Venda, error) {
	var v Venda
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNaoEncontrada
		}
		return nil, fmt.Errorf("buscar venda: %w", err)
	}
	return &v, nil
}

func (r *repositoryImpl) Listar(ctx context.Context, f Filtro, ordem Ordem, limite int) ([]Venda, error) {
	q := aplicarFiltro(r.db.WithContext(ctx).Model(&Venda{}), f)
	switch ordem {
	case OrdemFidelizacao:
		q = q.Order("loyalty_end_date ASC")
	default:
		q = q.Order("created_at DESC")
	}
	if limite > 0 {
		q = q.Limit(limite)
	}
	list := []Venda{}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Venda{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *repositoryImpl) Deletar(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Venda{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *repositoryImpl) Contar(ctx context.Context, f Filtro) (int64, error) {
	var n int64
	err := aplicarFiltro(r.db.WithContext(ctx).Model(&Venda{}), f).Count(&n).Error
	return n, err
}

type grupo struct {
	Chave string
	Total int64
}

func (r *repositoryImpl) ContarPor(ctx context.Context, f Filtro, campo string) (map[string]int64, error) {
	if err := campoValido(campo); err != nil {
		return nil, err
	}
	var rows []grupo
	err := aplicarFiltro(r.db.WithContext(ctx).Model(&Venda{}), f).
		Select(campo + " AS chave, COUNT(*) AS total").
		Group(campo).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, g := range rows {
		out[g.Chave] = g.Total
	}
	return out, nil
}

func (r *repositoryImpl) Somar(ctx context.Context, f Filtro, campo string) (decimal.Decimal, error) {
	if err := campoValido(campo); err != nil {
		return decimal.Zero, err
	}
	var total decimal.NullDecimal
	err := aplicarFiltro(r.db.WithContext(ctx).Model(&Venda{}), f).
		Select("SUM(" + campo + ")").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func aplicarFiltro(q *gorm.DB, f Filtro) *gorm.DB {
	if f.SellerID != "" {
		q = q.Where("seller_id = ?", f.SellerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.PartnerID != "" {
		q = q.Where("partner_id = ?", f.PartnerID)
	}
	if f.CreatedDe != "" {
		q = q.Where("created_at >= ?", f.CreatedDe)
	}
	if f.CreatedAte != "" {
		q = q.Where("created_at <= ?", f.CreatedAte)
	}
	if f.CreatedAntes != "" {
		q = q.Where("created_at < ?", f.CreatedAntes)
	}
	if f.ComComissao {
		q = q.Where("commission IS NOT NULL")
	}
	if f.LoyaltyAte != "" {
		q = q.Where("loyalty_end_date IS NOT NULL AND loyalty_end_date <= ?", f.LoyaltyAte)
	}
	if f.Search != "" {
		like := padraoLike(f.Search)
		q = q.Where(`(LOWER(client_name) LIKE ? ESCAPE '\' OR LOWER(client_nif) LIKE ? ESCAPE '\' OR LOWER(partner_name) LIKE ? ESCAPE '\')`,
			like, like, like)
	}
	return q
}
