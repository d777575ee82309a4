package venda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

func TestMontarPatch(t *testing.T) {
	agora := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	iso := "2025-02-01T12:00:00.000000+00:00"
	energia := &Venda{Category: CategoriaEnergia, Status: StatusPendente, LoyaltyMonths: 0}

	t.Run("só updated_at quando nada é enviado", func(t *testing.T) {
		campos, err := MontarPatch(vend1, energia, AtualizarRequest{}, agora)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"updated_at": iso}, campos)
	})

	t.Run("req e comissão descartados em silêncio", func(t *testing.T) {
		campos, err := MontarPatch(vend1, energia, AtualizarRequest{REQ: ptr("R"), Commission: ptr(5.0)}, agora)
		require.NoError(t, err)
		assert.NotContains(t, campos, "req")
		assert.NotContains(t, campos, "commission")
		assert.NotContains(t, campos, "commission_assigned_by")
	})

	t.Run("comissão de gestor leva metadados", func(t *testing.T) {
		campos, err := MontarPatch(admin, energia, AtualizarRequest{Commission: ptr(5.0)}, agora)
		require.NoError(t, err)
		assert.Equal(t, 5.0, campos["commission"])
		assert.Equal(t, "Ana Admin", campos["commission_assigned_by"])
		assert.Equal(t, iso, campos["commission_assigned_at"])
	})

	t.Run("ativação sem meses não calcula fim", func(t *testing.T) {
		campos, err := MontarPatch(vend1, energia, AtualizarRequest{Status: ptr(StatusAtivo)}, agora)
		require.NoError(t, err)
		assert.Equal(t, iso, campos["active_date"])
		assert.NotContains(t, campos, "loyalty_end_date")
	})

	t.Run("ativação com data já gravada", func(t *testing.T) {
		v := &Venda{Category: CategoriaEnergia, Status: StatusPendente, ActiveDate: ptr("2024-12-01T00:00:00.000000+00:00")}
		campos, err := MontarPatch(vend1, v, AtualizarRequest{Status: ptr(StatusAtivo)}, agora)
		require.NoError(t, err)
		assert.NotContains(t, campos, "active_date")
	})

	t.Run("status já ativo sem data não carimba active_date", func(t *testing.T) {
		v := &Venda{Category: CategoriaEnergia, Status: StatusAtivo, LoyaltyMonths: 12}
		campos, err := MontarPatch(vend1, v, AtualizarRequest{Status: ptr(StatusAtivo)}, agora)
		require.NoError(t, err)
		assert.Equal(t, StatusAtivo, campos["status"])
		assert.NotContains(t, campos, "active_date")
		assert.NotContains(t, campos, "loyalty_end_date")
	})

	t.Run("fidelização longa não transborda", func(t *testing.T) {
		v := &Venda{Category: CategoriaEnergia, Status: StatusPendente, LoyaltyMonths: 5000}
		campos, err := MontarPatch(vend1, v, AtualizarRequest{Status: ptr(StatusAtivo)}, agora)
		require.NoError(t, err)
		assert.Equal(t, iso, campos["active_date"])
		assert.Equal(t, utils.FormatarISO(agora.AddDate(0, 0, 150000)), campos["loyalty_end_date"])
		assert.Greater(t, campos["loyalty_end_date"], campos["active_date"])
	})

	t.Run("active_date com offset é normalizada para UTC", func(t *testing.T) {
		v := &Venda{Category: CategoriaTelecom, LoyaltyMonths: 1}
		campos, err := MontarPatch(vend1, v, AtualizarRequest{ActiveDate: ptr("2025-03-01T01:00:00+01:00")}, agora)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-01T00:00:00.000000+00:00", campos["active_date"])
		assert.Equal(t, "2025-03-31T00:00:00.000000+00:00", campos["loyalty_end_date"])
	})

	t.Run("active_date vazia é ignorada", func(t *testing.T) {
		campos, err := MontarPatch(vend1, energia, AtualizarRequest{ActiveDate: ptr("")}, agora)
		require.NoError(t, err)
		assert.NotContains(t, campos, "active_date")
	})

	t.Run("data inválida", func(t *testing.T) {
		_, err := MontarPatch(vend1, energia, AtualizarRequest{ActiveDate: ptr("ontem")}, agora)
		assert.ErrorIs(t, err, erros.ErrFormatoDataInvalido)
	})
}

func TestFimFidelizacao(t *testing.T) {
	inicio := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, inicio.AddDate(0, 0, 720), FimFidelizacao(inicio, 24))
	assert.Equal(t, inicio, FimFidelizacao(inicio, 0))

	// 3559 meses já não cabem num time.Duration
	for _, meses := range []int{3558, 3559, 3600} {
		fim := FimFidelizacao(inicio, meses)
		assert.Equal(t, inicio.AddDate(0, 0, meses*DiasPorMesFidelizacao), fim, meses)
		assert.True(t, fim.After(inicio), meses)
	}
	assert.Equal(t, time.Date(2320, 9, 12, 0, 0, 0, 0, time.UTC), FimFidelizacao(inicio, 3600))
}

func TestCriarRequestValoresNegativos(t *testing.T) {
	base := CriarRequest{ClientName: "Cliente", Category: CategoriaEnergia, PartnerID: "p1"}

	longa := base
	longa.LoyaltyMonths = 5000
	assert.NoError(t, utils.Validar(longa))

	negativo := base
	negativo.LoyaltyMonths = -1
	assert.ErrorIs(t, utils.Validar(negativo), erros.ErrPedidoInvalido)

	negativo = base
	negativo.ContractValue = -0.01
	assert.ErrorIs(t, utils.Validar(negativo), erros.ErrPedidoInvalido)
}
