package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		n    int
		want float64
	}{
		{name: "representation error 1.005", x: 1.005, n: 2, want: 1.01},
		{name: "half rounds up", x: 0.125, n: 2, want: 0.13},
		{name: "six digits", x: 38.3543649, n: 6, want: 38.354365},
		{name: "tonnes", x: 0.038355, n: 2, want: 0.04},
		{name: "already rounded", x: 81, n: 6, want: 81},
		{name: "float noise", x: 81.00000000000001, n: 6, want: 81},
		{name: "zero", x: 0, n: 2, want: 0},
		{name: "negative half toward positive", x: -2.5, n: 0, want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.x, tt.n))
		})
	}
}

func TestRound_Idempotent(t *testing.T) {
	values := []float64{0.081, 38.35436, 1.005, 123456.7891234, 0.000001, 9.999999999, 42}
	for _, v := range values {
		for _, n := range []int{2, 6} {
			once := Round(v, n)
			assert.Equal(t, once, Round(once, n), "value %v digits %d", v, n)
		}
	}
}
