package arbitrage

import (
	"errors"
	"fmt"
	"math"
)

// Erros de validação das entradas do calculador
var (
	ErrNoOdds        = errors.New("odds set is empty")
	ErrTooFewOdds    = errors.New("at least two odds are required")
	ErrNegativeStake = errors.New("stake must be greater than or equal to zero")
)

// InvalidOddError indica uma odd fora do domínio válido (finita e > 1.0)
type InvalidOddError struct {
	Index int
	Odd   float64
}

func (e *InvalidOddError) Error() string {
	return fmt.Sprintf("invalid odd %v at position %d: must be a finite number greater than 1.0", e.Odd, e.Index)
}

// Allocation é a fatia da banca destinada a um resultado.
// Valores monetários em centavos (fracionários, antes do arredondamento).
type Allocation struct {
	Odd         float64 `json:"odd"`
	Probability float64 `json:"probability"` // 1/odd
	Stake       float64 `json:"stake_cents"`
	Payout      float64 `json:"payout_cents"` // stake * odd
	Profit      float64 `json:"profit_cents"` // payout - banca total
}

// Plan é o resultado completo de um split de banca sobre um conjunto de odds
type Plan struct {
	Allocations []Allocation `json:"allocations"`
	ImpliedSum  float64      `json:"implied_sum"`
	Margin      float64      `json:"margin"` // implied_sum - 1; negativa quando há arbitragem
	Arbitrage   bool         `json:"arbitrage"`
	StakeCents  int64        `json:"stake_cents"`
	Payout      float64      `json:"payout_cents"` // pago em qualquer resultado
	Profit      float64      `json:"profit_cents"` // garantido; negativo se não há arbitragem
	ROI         float64      `json:"roi"`          // percentual sobre a banca
}

// ValidateOdds valida o conjunto de odds decimais
func ValidateOdds(odds []float64) error {
	if len(odds) == 0 {
		return ErrNoOdds
	}
	if len(odds) < 2 {
		return ErrTooFewOdds
	}
	for i, o := range odds {
		if math.IsNaN(o) || math.IsInf(o, 0) || o <= 1.0 {
			return &InvalidOddError{Index: i, Odd: o}
		}
	}
	return nil
}

// ImpliedSum soma as probabilidades implícitas (1/odd) do conjunto
func ImpliedSum(odds []float64) float64 {
	var s float64
	for _, o := range odds {
		s += 1 / o
	}
	return s
}

// Margin retorna a margem de arbitragem: soma implícita - 1
func Margin(odds []float64) float64 {
	return ImpliedSum(odds) - 1
}

// Split distribui a banca entre os resultados de modo que o retorno
// stake_i * odd_i seja igual em qualquer desfecho. Com soma implícita
// abaixo de 1 o lucro é garantido; acima de 1 o plano sai com lucro
// negativo e Arbitrage=false.
func Split(odds []float64, stakeCents int64) (*Plan, error) {
	if err := ValidateOdds(odds); err != nil {
		return nil, err
	}
	if stakeCents < 0 {
		return nil, ErrNegativeStake
	}

	s := ImpliedSum(odds)
	total := float64(stakeCents)
	payout := total / s

	plan := &Plan{
		Allocations: make([]Allocation, len(odds)),
		ImpliedSum:  s,
		Margin:      s - 1,
		Arbitrage:   s < 1,
		StakeCents:  stakeCents,
		Payout:      payout,
		Profit:      payout - total,
	}
	if stakeCents > 0 {
		plan.ROI = (payout - total) / total * 100
	}

	for i, o := range odds {
		p := 1 / o
		stake := total * p / s // equivalente a payout / odd
		plan.Allocations[i] = Allocation{
			Odd:         o,
			Probability: p,
			Stake:       stake,
			Payout:      stake * o,
			Profit:      stake*o - total,
		}
	}
	return plan, nil
}

// RoundedAllocation é a alocação em centavos inteiros, já no formato
// aceito pelas casas (duas casas decimais de moeda)
type RoundedAllocation struct {
	Odd         float64 `json:"odd"`
	StakeCents  int64   `json:"stake_cents"`
	PayoutCents int64   `json:"payout_cents"`
	ProfitCents int64   `json:"profit_cents"`
}

// RoundedPlan é o plano após o arredondamento conservador
type RoundedPlan struct {
	Allocations []RoundedAllocation `json:"allocations"`
	StakeCents  int64               `json:"stake_cents"`  // soma real das apostas arredondadas
	ProfitCents int64               `json:"profit_cents"` // pior caso entre os resultados
}

// RoundPlan arredonda as apostas para centavos inteiros: tudo para
// baixo, exceto a aposta na menor odd (a maior fatia da banca), que
// sobe um centavo quando necessário para manter a cobertura.
// O lucro informado é o mínimo entre os resultados possíveis.
func RoundPlan(p *Plan) *RoundedPlan {
	rp := &RoundedPlan{Allocations: make([]RoundedAllocation, len(p.Allocations))}

	minIdx := 0
	for i, a := range p.Allocations {
		if a.Odd < p.Allocations[minIdx].Odd {
			minIdx = i
		}
	}

	var total int64
	for i, a := range p.Allocations {
		cents := int64(math.Floor(a.Stake))
		if i == minIdx {
			cents = int64(math.Ceil(a.Stake))
		}
		rp.Allocations[i] = RoundedAllocation{Odd: a.Odd, StakeCents: cents}
		total += cents
	}
	rp.StakeCents = total

	for i := range rp.Allocations {
		a := &rp.Allocations[i]
		a.PayoutCents = int64(math.Floor(float64(a.StakeCents) * a.Odd))
		a.ProfitCents = a.PayoutCents - total
		if i == 0 || a.ProfitCents < rp.ProfitCents {
			rp.ProfitCents = a.ProfitCents
		}
	}
	return rp
}
