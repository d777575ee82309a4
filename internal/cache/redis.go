package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const identidadeKeyPrefix = "crm:identidade:"

// Cache envolve um cliente Redis opcional. Um *Cache nil ou sem cliente
// comporta-se como cache sempre vazia.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Init liga ao Redis e faz Ping; em caso de falha devolve o erro e um Cache
// desligado, para o serviço continuar sem cache.
func Init(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return Desligada(), err
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Desligada devolve uma cache sem backend.
func Desligada() *Cache {
	return &Cache{}
}

func (c *Cache) Ativa() bool {
	return c != nil && c.client != nil
}

// Close liberta a ligação.
func (c *Cache) Close() error {
	if !c.Ativa() {
		return nil
	}
	return c.client.Close()
}

// GetJSON lê a chave para dst; false em miss ou erro.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Ativa() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON grava v com o TTL da cache.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.Ativa() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

// Delete remove as chaves indicadas.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Ativa() || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// IdentidadeKey é a chave do utilizador resolvido pelo middleware de autenticação.
func IdentidadeKey(userID string) string {
	return identidadeKeyPrefix + userID
}
