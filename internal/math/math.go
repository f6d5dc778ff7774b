package math

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Format formats a float with the shortest representation that parses back to the same value.
// Exponent notation is only used for very small or very large magnitudes.
func Format(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.FormatFloat(f, format, -1, 64)
}

// Floats joins the given floats with a single space.
func Floats(ff []float64) string {
	s := make([]string, len(ff))
	for i, f := range ff {
		s[i] = Format(f)
	}
	return strings.Join(s, " ")
}

// Ints joins the given ints with a single space.
func Ints(ii []int) string {
	s := make([]string, len(ii))
	for i, v := range ii {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " ")
}

// Row copies the i-th row of the matrix.
func Row(m mat.Matrix, i int) []float64 {
	_, c := m.Dims()
	return mat.Row(make([]float64, c), i, m)
}

// Abs returns the absolute values of the given floats.
func Abs(ff []float64) []float64 {
	aa := make([]float64, len(ff))
	for i, f := range ff {
		aa[i] = math.Abs(f)
	}
	return aa
}

// Sum adds up the given ints.
func Sum(ii []int) int {
	var s int
	for _, i := range ii {
		s += i
	}
	return s
}
