package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// CalculateMean returns the arithmetic mean of the present values.
// Nil and NaN entries are skipped.
func CalculateMean(values []*float64) (float64, error) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		present = append(present, *v)
	}
	if len(present) == 0 {
		return 0, errors.New("no values for mean calculation")
	}
	return stat.Mean(present, nil), nil
}

// ArgMax returns the index of the first largest present value, or -1.
func ArgMax(values []*float64) int {
	return argBest(values, func(a, b float64) bool { return a > b })
}

// ArgMin returns the index of the first smallest present value, or -1.
func ArgMin(values []*float64) int {
	return argBest(values, func(a, b float64) bool { return a < b })
}

func argBest(values []*float64, better func(a, b float64) bool) int {
	best := -1
	for i, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		if best < 0 || better(*v, *values[best]) {
			best = i
		}
	}
	return best
}
