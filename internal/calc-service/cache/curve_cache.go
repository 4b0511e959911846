package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/arb-calc-poc/internal/calc-service/dto"
)

// Cache guarda curvas ROI já amostradas por uma janela curta.
// Valor efêmero e recalculável; não é persistência de dados.
type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keyCurve(q dto.CurveQuery) string {
	return fmt.Sprintf("curve:%g:%g:%d", q.KnownOdd, q.MaxOdd, q.Samples)
}

func (c *Cache) GetCurve(ctx context.Context, q dto.CurveQuery, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyCurve(q)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	// entrada corrompida conta como miss; o handler recalcula
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetCurve(ctx context.Context, q dto.CurveQuery, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyCurve(q), b, ttl).Err()
}
