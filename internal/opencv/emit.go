package opencv

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"

	"github.com/drakos74/svm2cv/internal/libsvm"
	"github.com/drakos74/svm2cv/internal/math"
	"github.com/drakos74/svm2cv/internal/ovo"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// svmTypes maps the libSVM formulations to the CvSVM type names.
var svmTypes = map[libsvm.SvmType]string{
	libsvm.CSVC:       "C_SVC",
	libsvm.NuSVC:      "NU_SVC",
	libsvm.OneClass:   "ONE_CLASS",
	libsvm.EpsilonSVR: "EPS_SVR",
	libsvm.NuSVR:      "NU_SVR",
}

// kernelTypes maps the libSVM kernels to the CvSVM kernel names.
var kernelTypes = map[libsvm.KernelType]string{
	libsvm.Linear:     "LINEAR",
	libsvm.Polynomial: "POLY",
	libsvm.RBF:        "RBF",
	libsvm.Sigmoid:    "SIGMOID",
}

// ValidName checks if the name can be used as an element name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Build assembles the storage document for the model and its decision functions.
func Build(name string, m *libsvm.Model, functions []ovo.DecisionFunction) (*Storage, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("invalid model element name '%s'", name)
	}
	svmType, ok := svmTypes[m.Header.SvmType]
	if !ok {
		return nil, fmt.Errorf("unsupported svm type '%s'", m.Header.SvmType)
	}
	kernelType, ok := kernelTypes[m.Header.KernelType]
	if !ok {
		return nil, fmt.Errorf("unsupported kernel type '%s'", m.Header.KernelType)
	}
	if len(functions) != m.Classes.Pairs() {
		return nil, fmt.Errorf("got %d decision functions for %d class pairs: %w", len(functions), m.Classes.Pairs(), libsvm.InvariantErr)
	}

	kernel := Kernel{
		Type:  kernelType,
		Gamma: math.Format(m.Header.Gamma),
	}
	switch m.Header.KernelType {
	case libsvm.Polynomial:
		kernel.Degree = math.Ints([]int{m.Header.Degree})
		kernel.Coef0 = math.Format(m.Header.Coef0)
	case libsvm.Sigmoid:
		kernel.Coef0 = math.Format(m.Header.Coef0)
	}

	width := m.Width()
	vectors := make([]string, m.TotalSV)
	for i := range vectors {
		vectors[i] = math.Floats(math.Row(m.Features, i))
	}

	dfs := make([]DecisionFunction, len(functions))
	for i, df := range functions {
		dfs[i] = DecisionFunction{
			SvCount: df.SvCount,
			Rho:     math.Format(df.Rho),
			Alpha:   math.Floats(df.Alpha),
			Index:   math.Ints(df.Index),
		}
	}

	return &Storage{
		Model: Model{
			XMLName: xml.Name{Local: name},
			TypeID:  SvmTypeID,
			SvmType: svmType,
			Kernel:  kernel,
			// C is only used for training
			C:          "1",
			VarAll:     width,
			VarCount:   width,
			ClassCount: m.Classes.NrClass(),
			ClassLabels: Matrix{
				TypeID: MatrixTypeID,
				Rows:   1,
				Cols:   m.Classes.NrClass(),
				Dt:     "i",
				Data:   math.Ints(m.Classes.Labels),
			},
			SvTotal:           m.TotalSV,
			SupportVectors:    vectors,
			DecisionFunctions: dfs,
		},
	}, nil
}

// Encode writes the document including the xml declaration.
func Encode(w io.Writer, doc *Storage) error {
	if _, err := io.WriteString(w, declaration); err != nil {
		return fmt.Errorf("could not write declaration: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("could not terminate document: %w", err)
	}
	return nil
}

// Marshal renders the whole document in memory.
func Marshal(doc *Storage) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
