package parceiro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

type contadorFake map[string]int64

func (c contadorFake) ContarVendasDoParceiro(_ context.Context, id string) (int64, error) {
	return c[id], nil
}

func novoService(t *testing.T, vendas contadorFake) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&Parceiro{}))

	s := NewService(NewRepository(gdb), vendas, nil)
	s.agora = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestCriarEListar(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, contadorFake{})

	for _, n := range []string{"MEO", "EDP", "Galp"} {
		_, err := s.Criar(ctx, CriarRequest{Name: n})
		require.NoError(t, err)
	}
	_, err := s.Criar(ctx, CriarRequest{Name: ""})
	assert.ErrorIs(t, err, erros.ErrPedidoInvalido)

	list, err := s.ListarAtivos(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "EDP", list[0].Name)
	assert.Equal(t, "Galp", list[1].Name)
	assert.Equal(t, "MEO", list[2].Name)
	assert.Equal(t, "2025-03-01T10:00:00.000000+00:00", list[0].CreatedAt)
	assert.True(t, list[0].Active)
}

func TestDeletarComVendasDesativa(t *testing.T) {
	ctx := context.Background()
	vendas := contadorFake{}
	s := novoService(t, vendas)

	p, err := s.Criar(ctx, CriarRequest{Name: "MEO"})
	require.NoError(t, err)
	vendas[p.ID] = 2

	msg, err := s.Deletar(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parceiro desativado (tem vendas associadas)", msg)

	got, err := s.BuscarPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	ativos, err := s.ListarAtivos(ctx)
	require.NoError(t, err)
	assert.Empty(t, ativos)

	todos, err := s.ListarTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestDeletarSemVendasApaga(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, contadorFake{})

	p, err := s.Criar(ctx, CriarRequest{Name: "EDP"})
	require.NoError(t, err)

	msg, err := s.Deletar(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parceiro eliminado", msg)

	_, err = s.BuscarPorID(ctx, p.ID)
	assert.True(t, errors.Is(err, erros.ErrNaoEncontrado))

	_, err = s.Deletar(ctx, p.ID)
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}

func TestAlternarAtivo(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, contadorFake{})

	p, err := s.Criar(ctx, CriarRequest{Name: "Galp"})
	require.NoError(t, err)

	ativo, err := s.AlternarAtivo(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ativo)

	ativo, err = s.AlternarAtivo(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ativo)

	_, err = s.AlternarAtivo(ctx, "nao-existe")
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}

func TestAtualizarParcial(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, contadorFake{})

	email := "geral@meo.pt"
	p, err := s.Criar(ctx, CriarRequest{Name: "MEO", Email: &email})
	require.NoError(t, err)

	tel := "210000000"
	got, err := s.Atualizar(ctx, p.ID, AtualizarRequest{Phone: &tel})
	require.NoError(t, err)
	assert.Equal(t, "MEO", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, tel, *got.Phone)

	mau := "não-é-email"
	_, err = s.Atualizar(ctx, p.ID, AtualizarRequest{Email: &mau})
	assert.ErrorIs(t, err, erros.ErrPedidoInvalido)
}
