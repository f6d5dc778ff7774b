package libsvm

import (
	svmmath "github.com/drakos74/svm2cv/internal/math"
	"gonum.org/v1/gonum/mat"
)

// SvmType is the formulation the model was trained with.
type SvmType string

const (
	CSVC       SvmType = "c_svc"
	NuSVC      SvmType = "nu_svc"
	OneClass   SvmType = "one_class"
	EpsilonSVR SvmType = "epsilon_svr"
	NuSVR      SvmType = "nu_svr"
)

// KernelType is the kernel function of the model.
type KernelType string

const (
	Linear      KernelType = "linear"
	Polynomial  KernelType = "polynomial"
	RBF         KernelType = "rbf"
	Sigmoid     KernelType = "sigmoid"
	Precomputed KernelType = "precomputed"
)

// Header holds the scalar metadata of the model.
type Header struct {
	SvmType    SvmType
	KernelType KernelType
	// Degree is only present for polynomial kernels.
	Degree int
	Gamma  float64
	// Coef0 is only present for polynomial and sigmoid kernels.
	Coef0 float64
}

// ClassInfo holds the class labels and the number of support vectors per class.
// Both slices are in the order the support vectors appear in the model file.
type ClassInfo struct {
	Labels []int
	NSV    []int
}

// NrClass returns the number of classes.
func (c ClassInfo) NrClass() int {
	return len(c.Labels)
}

// Total returns the number of support vectors across all classes.
func (c ClassInfo) Total() int {
	return svmmath.Sum(c.NSV)
}

// Pairs returns the number of one-vs-one sub-problems.
func (c ClassInfo) Pairs() int {
	k := c.NrClass()
	return k * (k - 1) / 2
}

// Model is a parsed libSVM model.
type Model struct {
	Header  Header
	Classes ClassInfo
	TotalSV int
	// Rho holds one bias per class pair in canonical pair order.
	Rho []float64
	// ProbA and ProbB are only present for models trained with probability estimates.
	ProbA []float64
	ProbB []float64
	// Coef is the total_sv x (nr_class-1) dual coefficient matrix.
	Coef *mat.Dense
	// Features is the total_sv x width dense support vector matrix.
	Features *mat.Dense
}

// Width returns the dense feature dimension.
func (m *Model) Width() int {
	_, c := m.Features.Dims()
	return c
}
