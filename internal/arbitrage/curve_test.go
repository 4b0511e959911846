package arbitrage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakEvenOdd(t *testing.T) {
	// soma implícita chega a 1 quando 1/o1 + 1/o2 == 1
	assert.InDelta(t, 2.0, BreakEvenOdd(2.0), 1e-9)
	assert.InDelta(t, 5.0, BreakEvenOdd(1.25), 1e-9)
	assert.InDelta(t, 1.25, BreakEvenOdd(5.0), 1e-9)
}

func TestCurve(t *testing.T) {
	pts, breakEven, err := Curve(2.0, 100.0, 500)
	require.NoError(t, err)
	require.Len(t, pts, 500)

	assert.InDelta(t, MinCurveOdd, pts[0].Odd, 1e-9)
	assert.InDelta(t, 100.0, pts[len(pts)-1].Odd, 1e-9)
	assert.InDelta(t, 2.0, breakEven, 1e-9)

	// ROI cresce monotonicamente com a segunda odd
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].ROI, pts[i-1].ROI)
	}

	// abaixo do break-even o ROI é negativo; acima, positivo
	for _, p := range pts {
		switch {
		case p.Odd < breakEven-1e-9:
			assert.Negative(t, p.ROI)
		case p.Odd > breakEven+1e-9:
			assert.Positive(t, p.ROI)
		}
	}

	// no limite superior o ROI tende a (1/p1 - 1) por cima
	assert.Less(t, pts[len(pts)-1].ROI, (2.0-1)*100)
}

func TestCurveRejectsBadInput(t *testing.T) {
	var invalid *InvalidOddError
	_, _, err := Curve(1.0, 100.0, 10)
	assert.ErrorAs(t, err, &invalid)

	_, _, err = Curve(2.0, 1.0, 10)
	assert.ErrorAs(t, err, &invalid)

	_, _, err = Curve(2.0, MinCurveOdd, 10)
	assert.ErrorIs(t, err, ErrCurveRange)

	_, _, err = Curve(2.0, 100.0, 1)
	assert.ErrorIs(t, err, ErrCurveSamples)
}
