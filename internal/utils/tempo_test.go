package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	esperado := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	for _, s := range []string{
		"2024-03-15T10:30:00Z",
		"2024-03-15T10:30:00+00:00",
		"2024-03-15T11:30:00+01:00",
		"2024-03-15T10:30:00",
		"2024-03-15T10:30:00.000000+00:00",
		"2024-03-15 10:30:00",
		"2024-03-15T10:30",
	} {
		t.Run(s, func(t *testing.T) {
			got, err := ParseISO(s)
			require.NoError(t, err)
			assert.True(t, esperado.Equal(got), "got %s", got)
		})
	}

	d, err := ParseISO("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	for _, s := range []string{"", "ontem", "15/03/2024", "2024-13-01"} {
		_, err := ParseISO(s)
		assert.ErrorIs(t, err, ErrDataInvalida, s)
	}
}

func TestFormatarISOOrdemLexicografica(t *testing.T) {
	a := FormatarISO(time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC))
	b := FormatarISO(time.Date(2024, 1, 10, 1, 0, 0, 5000, time.UTC))
	assert.Equal(t, "2024-01-09T23:00:00.000000+00:00", a)
	assert.Less(t, a, b)

	lisboa := time.FixedZone("WEST", 3600)
	assert.Equal(t, "2024-06-01T09:00:00.000000+00:00", FormatarISO(time.Date(2024, 6, 1, 10, 0, 0, 0, lisboa)))
}

func TestInicioDoMes(t *testing.T) {
	got := InicioDoMes(time.Date(2025, 2, 27, 18, 4, 1, 9, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
}
