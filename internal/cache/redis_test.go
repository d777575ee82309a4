package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheDesligadaEVazia(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*Cache{nil, Desligada()} {
		assert.False(t, c.Ativa())

		c.SetJSON(ctx, IdentidadeKey("u1"), map[string]string{"id": "u1"})
		var dst map[string]string
		assert.False(t, c.GetJSON(ctx, IdentidadeKey("u1"), &dst))
		c.Delete(ctx, IdentidadeKey("u1"))
		assert.NoError(t, c.Close())
	}
}

func TestIdentidadeKey(t *testing.T) {
	assert.Equal(t, "crm:identidade:abc", IdentidadeKey("abc"))
}
