package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist guarda tokens revogados por logout até o exp original.
// Sem Redis configurado o denylist é nil e o logout só vale no cliente.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	if client == nil {
		return nil
	}
	return &TokenDenylist{client: client}
}

func (d *TokenDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, "revoked:"+token, "1", ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) bool {
	n, err := d.client.Exists(ctx, "revoked:"+token).Result()
	if err != nil {
		// Redis fora do ar não pode derrubar a autenticação inteira.
		return false
	}
	return n > 0
}
