package ws

import (
	"time"

	"github.com/google/uuid"

	"github.com/radieske/arb-calc-poc/internal/arbitrage"
)

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: calculate | curve | subscribe | unsubscribe | ping
type ClientMsg struct {
	Type string `json:"type"`

	// calculate
	Odds       []float64 `json:"odds,omitempty"`
	StakeCents int64     `json:"stake_cents,omitempty"`

	// curve
	KnownOdd float64 `json:"known_odd,omitempty"`
	MaxOdd   float64 `json:"max_odd,omitempty"`
	Samples  int     `json:"samples,omitempty"`
}

// ServerMsg é o envelope das respostas enviadas ao cliente
// Type: result | curve | opportunity | error | pong
type ServerMsg struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Opportunity é o aviso publicado quando um cálculo encontra uma
// arbitragem real (margem negativa). Não carrega identidade de
// usuário nem banca, só as odds e o retorno delas.
type Opportunity struct {
	ID      string    `json:"id"`
	Odds    []float64 `json:"odds"`
	Margin  float64   `json:"margin"`
	ROI     float64   `json:"roi"`
	FoundAt time.Time `json:"found_at"`
}

// NewOpportunity monta o aviso a partir de um plano calculado
func NewOpportunity(plan *arbitrage.Plan) Opportunity {
	odds := make([]float64, len(plan.Allocations))
	for i, a := range plan.Allocations {
		odds[i] = a.Odd
	}
	return Opportunity{
		ID:      uuid.NewString(),
		Odds:    odds,
		Margin:  plan.Margin,
		ROI:     plan.ROI,
		FoundAt: time.Now().UTC(),
	}
}
