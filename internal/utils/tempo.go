package utils

import (
	"errors"
	"strings"
	"time"
)

// LayoutISO produz sempre a mesma largura e o sufixo "+00:00" em UTC,
// de modo que a ordem lexicográfica das strings coincide com a cronológica.
const LayoutISO = "2006-01-02T15:04:05.000000-07:00"

var layoutsAceites = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

var ErrDataInvalida = errors.New("data ISO-8601 inválida")

// FormatarISO converte para UTC e formata com LayoutISO.
func FormatarISO(t time.Time) string {
	return t.UTC().Format(LayoutISO)
}

// ParseISO aceita ISO-8601 com ou sem offset; "Z" vale "+00:00" e
// datas sem offset são lidas como UTC.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrDataInvalida
	}
	s = strings.ReplaceAll(s, "Z", "+00:00")
	for _, layout := range layoutsAceites {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrDataInvalida
}

// InicioDoMes devolve o primeiro instante do mês de t, em UTC.
func InicioDoMes(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
