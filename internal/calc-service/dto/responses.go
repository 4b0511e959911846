package dto

import "github.com/radieske/arb-calc-poc/internal/arbitrage"

// CalculateResponse devolve o plano exato e a versão arredondada
// para centavos inteiros (a que vai pra casa de aposta)
type CalculateResponse struct {
	Plan    *arbitrage.Plan        `json:"plan"`
	Rounded *arbitrage.RoundedPlan `json:"rounded"`
}

// CurveResponse devolve os pontos da curva ROI x segunda odd
type CurveResponse struct {
	KnownOdd     float64           `json:"known_odd"`
	MaxOdd       float64           `json:"max_odd"`
	BreakEvenOdd float64           `json:"break_even_odd"` // ROI zero; acima dela há arbitragem
	Points       []arbitrage.Point `json:"points"`
}

// ErrorResponse é o corpo padrão de erro da API
type ErrorResponse struct {
	Error string `json:"error"`
}
