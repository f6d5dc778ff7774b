package ovo

import (
	"fmt"

	"github.com/drakos74/svm2cv/internal/libsvm"
	svmmath "github.com/drakos74/svm2cv/internal/math"
	"gonum.org/v1/gonum/mat"
)

// Pair is a one-vs-one sub-problem between class I and class J, with I < J.
type Pair struct {
	I int
	J int
}

// Pairs enumerates the class pairs of a k-class model in canonical order:
// (0,1), (0,2), ..., (0,k-1), (1,2), ...
func Pairs(k int) []Pair {
	pairs := make([]Pair, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// DecisionFunction is the binary decision function of one class pair.
// The first NSV[I] entries of Alpha and Index belong to class I, the rest to class J.
type DecisionFunction struct {
	Pair    Pair
	SvCount int
	Rho     float64
	Alpha   []float64
	Index   []int
}

// Offsets holds the first support vector row of every class,
// with a trailing entry equal to the total number of support vectors.
type Offsets []int

// NewOffsets computes the cumulative row offsets for the given per class counts.
func NewOffsets(nsv []int) Offsets {
	offsets := make(Offsets, len(nsv)+1)
	for c, n := range nsv {
		offsets[c+1] = offsets[c] + n
	}
	return offsets
}

// Rows returns the row range [from, to) of the support vectors of class c.
func (o Offsets) Rows(c int) (from, to int) {
	return o[c], o[c+1]
}

// Total returns the number of support vectors.
func (o Offsets) Total() int {
	return o[len(o)-1]
}

// Reconstruct regroups the libSVM coefficient table into one decision function per class pair.
//
// libSVM stores for every support vector of class c the nr_class-1 coefficients of the
// sub-problems c takes part in. For the pair (i,j) the coefficients of the class i vectors
// sit in column j-1 and those of the class j vectors in column i.
// Alphas are emitted as magnitudes, their sign is implied by the class they belong to.
func Reconstruct(classes libsvm.ClassInfo, rho []float64, coef mat.Matrix) ([]DecisionFunction, error) {
	k := classes.NrClass()
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d: %w", k, libsvm.InvariantErr)
	}
	if len(classes.NSV) != k {
		return nil, fmt.Errorf("got %d support vector counts for %d classes: %w", len(classes.NSV), k, libsvm.InvariantErr)
	}
	if len(rho) != classes.Pairs() {
		return nil, fmt.Errorf("got %d rho values for %d class pairs: %w", len(rho), classes.Pairs(), libsvm.InvariantErr)
	}

	offsets := NewOffsets(classes.NSV)
	rows, cols := coef.Dims()
	if offsets.Total() != rows {
		return nil, fmt.Errorf("support vector counts add up to %d but there are %d coefficient rows: %w", offsets.Total(), rows, libsvm.InvariantErr)
	}
	if cols != k-1 {
		return nil, fmt.Errorf("got %d coefficient columns for %d classes: %w", cols, k, libsvm.InvariantErr)
	}

	functions := make([]DecisionFunction, 0, classes.Pairs())
	for r, pair := range Pairs(k) {
		fromI, toI := offsets.Rows(pair.I)
		fromJ, toJ := offsets.Rows(pair.J)
		if fromI < 0 || toI > rows || fromJ < 0 || toJ > rows || fromI > toI || fromJ > toJ {
			return nil, fmt.Errorf("rows [%d,%d) and [%d,%d) of pair %v out of %d rows: %w", fromI, toI, fromJ, toJ, pair, rows, libsvm.InvariantErr)
		}

		count := (toI - fromI) + (toJ - fromJ)
		df := DecisionFunction{
			Pair:    pair,
			SvCount: count,
			Rho:     rho[r],
			Index:   make([]int, 0, count),
		}
		alpha := make([]float64, 0, count)
		for row := fromI; row < toI; row++ {
			alpha = append(alpha, coef.At(row, pair.J-1))
			df.Index = append(df.Index, row)
		}
		for row := fromJ; row < toJ; row++ {
			alpha = append(alpha, coef.At(row, pair.I))
			df.Index = append(df.Index, row)
		}
		df.Alpha = svmmath.Abs(alpha)
		functions = append(functions, df)
	}

	return functions, nil
}

// Coverage counts for every support vector row the number of decision functions it takes part in.
func Coverage(functions []DecisionFunction, total int) []int {
	coverage := make([]int, total)
	for _, df := range functions {
		for _, row := range df.Index {
			if row >= 0 && row < total {
				coverage[row]++
			}
		}
	}
	return coverage
}
