package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/arb-calc-poc/internal/arbitrage"
	"github.com/radieske/arb-calc-poc/internal/calc-service/dto"
)

// Publisher publica avisos de arbitragem encontrada para as demais
// instâncias (Redis Pub/Sub)
type Publisher interface {
	PublishArbFound(ctx context.Context, opp Opportunity) error
}

// Hub gerencia as conexões WebSocket do calculador.
// Cada cliente manda calculate/curve e recebe a resposta na própria
// conexão; quem dá subscribe passa a receber o feed de oportunidades.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	publ     Publisher

	// Limites da curva, definidos pelo main a partir da config
	DefaultSamples int
	MaxSamples     int
	DefaultMaxOdd  float64

	// Callbacks de métricas (counter/gauge no main)
	OnConnected    func()
	OnDisconnected func()
	OnCalculated   func()
	OnArbFound     func()
	OnSent         func()
	OnError        func(stage string)

	mu   sync.RWMutex
	subs map[*client]struct{}
}

// client embrulha a conexão com um mutex de escrita; o gorilla/websocket
// permite no máximo um escritor por vez e o Broadcast roda em goroutine
// própria, concorrendo com as respostas do loop de leitura
type client struct {
	wmu  sync.Mutex
	conn *websocket.Conn
}

// NewHub cria o hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, publ Publisher, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		publ:     publ,
		subs:     make(map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Mensagens aceitas: calculate, curve, subscribe, unsubscribe, ping
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{conn: conn}

	if h.OnConnected != nil {
		h.OnConnected()
	}

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "calculate":
			h.handleCalculate(r.Context(), c, msg)
		case "curve":
			h.handleCurve(c, msg)
		case "subscribe":
			h.mu.Lock()
			h.subs[c] = struct{}{}
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(h.subs, c)
			h.mu.Unlock()
		case "ping":
			h.reply(c, ServerMsg{Type: "pong"})
		default:
			h.reply(c, ServerMsg{Type: "error", Error: "unknown message type"})
		}
	}

	// Remove a conexão do feed ao desconectar
	h.mu.Lock()
	delete(h.subs, c)
	h.mu.Unlock()
	if h.OnDisconnected != nil {
		h.OnDisconnected()
	}
}

// handleCalculate roda o split da banca e devolve o plano na conexão.
// Arbitragem real vira aviso no canal de broadcast.
func (h *Hub) handleCalculate(ctx context.Context, c *client, msg ClientMsg) {
	plan, err := arbitrage.Split(msg.Odds, msg.StakeCents)
	if err != nil {
		if h.OnError != nil {
			h.OnError("calculate")
		}
		h.reply(c, ServerMsg{Type: "error", Error: err.Error()})
		return
	}
	if h.OnCalculated != nil {
		h.OnCalculated()
	}

	if plan.Arbitrage {
		if h.OnArbFound != nil {
			h.OnArbFound()
		}
		if h.publ != nil {
			if err := h.publ.PublishArbFound(ctx, NewOpportunity(plan)); err != nil {
				h.log.Warn("publish opportunity failed", zap.Error(err))
			}
		}
	}

	h.reply(c, ServerMsg{Type: "result", Payload: dto.CalculateResponse{
		Plan:    plan,
		Rounded: arbitrage.RoundPlan(plan),
	}})
}

// handleCurve amostra a curva ROI e devolve os pontos na conexão
func (h *Hub) handleCurve(c *client, msg ClientMsg) {
	samples := msg.Samples
	if samples == 0 {
		samples = h.DefaultSamples
	}
	maxOdd := msg.MaxOdd
	if maxOdd == 0 {
		maxOdd = h.DefaultMaxOdd
	}
	if samples > h.MaxSamples {
		h.reply(c, ServerMsg{Type: "error", Error: "samples above the configured limit"})
		return
	}

	pts, breakEven, err := arbitrage.Curve(msg.KnownOdd, maxOdd, samples)
	if err != nil {
		if h.OnError != nil {
			h.OnError("curve")
		}
		h.reply(c, ServerMsg{Type: "error", Error: err.Error()})
		return
	}

	h.reply(c, ServerMsg{Type: "curve", Payload: dto.CurveResponse{
		KnownOdd:     msg.KnownOdd,
		MaxOdd:       maxOdd,
		BreakEvenOdd: breakEven,
		Points:       pts,
	}})
}

// reply envia uma mensagem para um único cliente, serializando as
// escritas na conexão
func (h *Hub) reply(c *client, msg ServerMsg) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if err := c.conn.WriteJSON(msg); err != nil {
		h.log.Warn("ws write failed", zap.Error(err))
		return
	}
	if h.OnSent != nil {
		h.OnSent()
	}
}

// Broadcast envia um aviso de oportunidade para todos os inscritos no feed
func (h *Hub) Broadcast(opp Opportunity) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.subs))
	for c := range h.subs {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.reply(c, ServerMsg{Type: "opportunity", Payload: opp})
	}
}
