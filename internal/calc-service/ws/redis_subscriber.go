package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StartRedisSubscriber inicia uma goroutine que escuta o canal Redis
// Pub/Sub de oportunidades e repassa os avisos para os clientes
// WebSocket inscritos via Hub
//
// Funcionamento:
// - Recebe mensagens JSON do canal Redis
// - Desserializa para Opportunity
// - Chama hub.Broadcast para entregar aos inscritos
func StartRedisSubscriber(ctx context.Context, r *redis.Client, hub *Hub, channel string) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var opp Opportunity
				if err := json.Unmarshal([]byte(msg.Payload), &opp); err != nil {
					hub.log.Warn("ws subscriber unmarshal failed", zap.Error(err))
					continue
				}
				hub.Broadcast(opp)
			}
		}
	}()
}
