package venda

import (
	"context"

	"github.com/hugoalbmartins/Leiritrix/internal/parceiro"
)

type contadorParceiro struct {
	repo Repository
}

// NewContadorParceiro expõe o Repository como parceiro.ContadorVendas.
func NewContadorParceiro(repo Repository) parceiro.ContadorVendas {
	return contadorParceiro{repo: repo}
}

func (c contadorParceiro) ContarVendasDoParceiro(ctx context.Context, partnerID string) (int64, error) {
	return c.repo.Contar(ctx, Filtro{PartnerID: partnerID})
}
