package libsvm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func load(t *testing.T, name string) []string {
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return strings.Split(string(b), "\n")
}

func TestParse_TwoClass(t *testing.T) {

	m, err := Parse(load(t, "two_class.model"))
	require.NoError(t, err)

	assert.Equal(t, Header{SvmType: CSVC, KernelType: RBF, Gamma: 0.5}, m.Header)
	assert.Equal(t, []int{1, -1}, m.Classes.Labels)
	assert.Equal(t, []int{1, 2}, m.Classes.NSV)
	assert.Equal(t, 2, m.Classes.NrClass())
	assert.Equal(t, 1, m.Classes.Pairs())
	assert.Equal(t, 3, m.TotalSV)
	assert.Equal(t, []float64{-0.25}, m.Rho)
	assert.Nil(t, m.ProbA)
	assert.Nil(t, m.ProbB)

	assert.True(t, mat.Equal(mat.NewDense(3, 1, []float64{1, -0.5, -0.5}), m.Coef))

	assert.Equal(t, 4, m.Width())
	assert.True(t, mat.Equal(mat.NewDense(3, 4, []float64{
		0.5, 0, 2, 0,
		0, 1, 0, 0,
		-1, 0, 0, 0.25,
	}), m.Features))
}

func TestParse_ThreeClass(t *testing.T) {

	m, err := Parse(load(t, "three_class.model"))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Classes.NrClass())
	assert.Equal(t, 5, m.Classes.Total())
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, m.Rho)

	r, c := m.Coef.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.75, m.Coef.At(1, 0))
	assert.Equal(t, -1.0, m.Coef.At(4, 1))

	// sparse "1:0.5 3:2" is expanded to the widest support vector
	assert.Equal(t, []float64{0.5, 0, 2, 0}, mat.Row(nil, 0, m.Features))
	assert.Equal(t, []float64{0.125, 0.5, 0, 0}, mat.Row(nil, 4, m.Features))
}

func TestParse_OptionalLines(t *testing.T) {

	m, err := Parse(load(t, "poly.model"))
	require.NoError(t, err)

	assert.Equal(t, Header{SvmType: NuSVC, KernelType: Polynomial, Degree: 3, Gamma: 0.1, Coef0: 1.5}, m.Header)
	assert.Equal(t, []float64{-2.5}, m.ProbA)
	assert.Equal(t, []float64{0.125}, m.ProbB)
	assert.Equal(t, []int{4, 7}, m.Classes.Labels)
	assert.Equal(t, 2, m.Width())

	m, err = Parse(load(t, "linear.model"))
	require.NoError(t, err)
	assert.Equal(t, Linear, m.Header.KernelType)
	assert.Equal(t, 0.0, m.Header.Gamma)
	assert.Equal(t, []float64{1e-05}, m.Rho)
}

func TestParse_FormatError(t *testing.T) {

	type test struct {
		line    int
		replace string
		with    string
	}

	tests := map[string]test{
		"svm-type-missing-value": {
			line:    0,
			replace: "svm_type c_svc",
			with:    "svm_type",
		},
		"svm-type-unknown": {
			line:    0,
			replace: "svm_type c_svc",
			with:    "svm_type c_svm",
		},
		"kernel-type-key": {
			line:    1,
			replace: "kernel_type rbf",
			with:    "kernel rbf",
		},
		"gamma-not-a-number": {
			line:    2,
			replace: "gamma 0.25",
			with:    "gamma abc",
		},
		"gamma-missing-for-rbf": {
			line:    2,
			replace: "gamma 0.25\n",
			with:    "",
		},
		"nr-class-not-an-int": {
			line:    3,
			replace: "nr_class 3",
			with:    "nr_class 3.5",
		},
		"rho-not-a-number": {
			line:    5,
			replace: "rho 0.1 0.2 0.3",
			with:    "rho 0.1 x 0.3",
		},
		"rho-not-finite": {
			line:    5,
			replace: "rho 0.1 0.2 0.3",
			with:    "rho 0.1 NaN 0.3",
		},
		"label-not-an-int": {
			line:    6,
			replace: "label 0 1 2",
			with:    "label 0 one 2",
		},
		"separator": {
			line:    8,
			replace: "SV\n",
			with:    "SVs\n",
		},
		"coefficient": {
			line:    9,
			replace: "1 0.5 1:0.5 3:2",
			with:    "1 a 1:0.5 3:2",
		},
		"too-few-coefficients": {
			line:    10,
			replace: "0.75 0 2:1",
			with:    "0.75",
		},
		"feature-pair": {
			line:    11,
			replace: "-1 1 1:1 4:0.25",
			with:    "-1 1 1:1 4=0.25",
		},
		"feature-value": {
			line:    11,
			replace: "-1 1 1:1 4:0.25",
			with:    "-1 1 1:1 4:x",
		},
		"feature-zero-index": {
			line:    12,
			replace: "-0.25 -0.5 3:-1",
			with:    "-0.25 -0.5 0:-1",
		},
		"feature-descending": {
			line:    13,
			replace: "0 -1 1:0.125 2:0.5",
			with:    "0 -1 2:0.125 1:0.5",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lines := load(t, "three_class.model")
			content := strings.Replace(strings.Join(lines, "\n"), tt.replace, tt.with, 1)

			_, err := Parse(strings.Split(content, "\n"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, FormatErr))
			assert.False(t, errors.Is(err, InvariantErr))

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.line, formatErr.Line)
			assert.NotEmpty(t, formatErr.Pattern)
			assert.Contains(t, err.Error(), formatErr.Pattern)
		})
	}
}

func TestParse_InvariantViolation(t *testing.T) {

	type test struct {
		replace string
		with    string
	}

	tests := map[string]test{
		"nr-sv-sum": {
			replace: "nr_sv 2 1 2",
			with:    "nr_sv 2 2 2",
		},
		"nr-sv-count": {
			replace: "nr_sv 2 1 2",
			with:    "nr_sv 3 2",
		},
		"rho-count": {
			replace: "rho 0.1 0.2 0.3",
			with:    "rho 0.1 0.2",
		},
		"label-count": {
			replace: "label 0 1 2",
			with:    "label 0 1 2 3",
		},
		"single-class": {
			replace: "nr_class 3",
			with:    "nr_class 1",
		},
		"no-support-vectors": {
			replace: "total_sv 5",
			with:    "total_sv 0",
		},
		"missing-support-vector": {
			replace: "\n0 -1 1:0.125 2:0.5",
			with:    "",
		},
		"feature-index-too-high": {
			replace: "1 0.5 1:0.5 3:2",
			with:    "1 0.5 1:0.5 900000000000:2",
		},
		"matrix-too-large": {
			replace: "0.75 0 2:1",
			with:    "0.75 0 30000000:1",
		},
		"extra-support-vector": {
			replace: "0 -1 1:0.125 2:0.5",
			with:    "0 -1 1:0.125 2:0.5\n1 1 1:1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lines := load(t, "three_class.model")
			content := strings.Replace(strings.Join(lines, "\n"), tt.replace, tt.with, 1)

			_, err := Parse(strings.Split(content, "\n"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, InvariantErr))
			assert.False(t, errors.Is(err, FormatErr))
		})
	}
}

func TestParse_NoFeatures(t *testing.T) {
	lines := []string{
		"svm_type c_svc",
		"kernel_type rbf",
		"gamma 1",
		"nr_class 2",
		"total_sv 2",
		"rho 0",
		"label 0 1",
		"nr_sv 1 1",
		"SV",
		"1",
		"-1",
	}
	_, err := Parse(lines)
	assert.True(t, errors.Is(err, InvariantErr))
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 0, formatErr.Line)
	assert.True(t, errors.Is(err, errEOF))
}
