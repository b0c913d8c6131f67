package dagnn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Metrics are the results of a full pass over a set of examples.
type Metrics struct {
	Error   float32
	Fitness int
}

func (m Metrics) add(other Metrics) Metrics {
	return Metrics{Error: m.Error + other.Error, Fitness: m.Fitness + other.Fitness}
}

// Activate is the nonlinearity applied to hidden and output units: x·tanh(x).
func Activate(x float32) float32 { return x * math32.Tanh(x) }

func activateAll(a []float32) {
	for i := range a {
		a[i] = Activate(a[i])
	}
}

// MSE is the error between two vectors, Σ |a-b|·ln(|a-b|+1).
//
// Despite the name it is not a mean squared error. It grows slower than the squared
// error for large deviations and is zero iff a == b.
func MSE(a, b []float32) float32 {
	mustSameLen(a, b)
	var retVal float32
	for i := range a {
		d := math32.Abs(a[i] - b[i])
		retVal += d * math32.Log(d+1)
	}
	return retVal
}

// Score counts the positions where a is on the same side of 0.5 as the polarity
// of b. Ties at exactly 0.5 do not count.
func Score(a, b []float32) int {
	mustSameLen(a, b)
	var retVal int
	for i := range a {
		if (a[i]-0.5)*(2*b[i]-1) > 0 {
			retVal++
		}
	}
	return retVal
}

func mustSameLen(a, b []float32) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("vectors of different lengths: %d and %d", len(a), len(b)))
	}
}
