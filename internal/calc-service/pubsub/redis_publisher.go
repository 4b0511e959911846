package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/arb-calc-poc/internal/calc-service/ws"
)

// ChannelArbFound é o canal padrão de broadcast de oportunidades
const ChannelArbFound = "arb_opportunities_broadcast"

// RedisBroadcaster publica avisos de arbitragem no Redis Pub/Sub;
// o subscriber do hub WS entrega aos clientes inscritos
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	if channel == "" {
		channel = ChannelArbFound
	}
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) PublishArbFound(ctx context.Context, opp ws.Opportunity) error {
	payload, err := json.Marshal(opp)
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, b.channel, payload).Err()
}
