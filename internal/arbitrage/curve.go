package arbitrage

import "errors"

// MinCurveOdd é o limite inferior de amostragem; odds <= 1.0 não têm
// probabilidade implícita válida
const MinCurveOdd = 1.01

var (
	ErrCurveRange   = errors.New("max odd must be greater than the curve lower bound")
	ErrCurveSamples = errors.New("at least two samples are required")
)

// Point é uma amostra da curva ROI x odd do segundo resultado
type Point struct {
	Odd float64 `json:"odd"`
	ROI float64 `json:"roi"`
}

// BreakEvenOdd devolve a odd do segundo resultado em que a soma das
// probabilidades implícitas chega exatamente a 1 (ROI zero). Acima
// dela existe arbitragem.
func BreakEvenOdd(knownOdd float64) float64 {
	return knownOdd / (knownOdd - 1)
}

// Curve amostra o ROI (%) de uma arbitragem de dois resultados com a
// primeira odd fixa, variando a segunda de MinCurveOdd até maxOdd.
// Devolve também a odd de break-even da primeira odd.
func Curve(knownOdd, maxOdd float64, samples int) ([]Point, float64, error) {
	if err := ValidateOdds([]float64{knownOdd, maxOdd}); err != nil {
		return nil, 0, err
	}
	if maxOdd <= MinCurveOdd {
		return nil, 0, ErrCurveRange
	}
	if samples < 2 {
		return nil, 0, ErrCurveSamples
	}

	p1 := 1 / knownOdd
	step := (maxOdd - MinCurveOdd) / float64(samples-1)

	pts := make([]Point, samples)
	for i := range pts {
		o2 := MinCurveOdd + step*float64(i)
		s := p1 + 1/o2
		pts[i] = Point{Odd: o2, ROI: (1/s - 1) * 100}
	}
	return pts, BreakEvenOdd(knownOdd), nil
}
