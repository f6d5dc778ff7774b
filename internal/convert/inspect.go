package convert

import (
	"fmt"

	"github.com/drakos74/svm2cv/internal/ovo"
	"github.com/drakos74/svm2cv/internal/storage"
	"gopkg.in/yaml.v3"
)

// Summary describes a model and the decision functions it converts into.
type Summary struct {
	SvmType           string            `yaml:"svm_type"`
	Kernel            KernelSummary     `yaml:"kernel"`
	SupportVectors    int               `yaml:"support_vectors"`
	Features          int               `yaml:"features"`
	Classes           []ClassSummary    `yaml:"classes"`
	DecisionFunctions []FunctionSummary `yaml:"decision_functions"`
}

type KernelSummary struct {
	Type   string  `yaml:"type"`
	Degree int     `yaml:"degree,omitempty"`
	Gamma  float64 `yaml:"gamma"`
	Coef0  float64 `yaml:"coef0,omitempty"`
}

type ClassSummary struct {
	Label          int `yaml:"label"`
	SupportVectors int `yaml:"support_vectors"`
	// From and To bound the support vector rows of the class, To exclusive.
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type FunctionSummary struct {
	Labels  [2]int  `yaml:"labels,flow"`
	SvCount int     `yaml:"sv_count"`
	Rho     float64 `yaml:"rho"`
}

// Inspect summarises the model of the given source without writing anything.
func Inspect(src storage.Source) (*Summary, error) {
	m, functions, err := Load(src)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		SvmType: string(m.Header.SvmType),
		Kernel: KernelSummary{
			Type:   string(m.Header.KernelType),
			Degree: m.Header.Degree,
			Gamma:  m.Header.Gamma,
			Coef0:  m.Header.Coef0,
		},
		SupportVectors:    m.TotalSV,
		Features:          m.Width(),
		Classes:           make([]ClassSummary, m.Classes.NrClass()),
		DecisionFunctions: make([]FunctionSummary, len(functions)),
	}

	offsets := ovo.NewOffsets(m.Classes.NSV)
	for c, label := range m.Classes.Labels {
		from, to := offsets.Rows(c)
		s.Classes[c] = ClassSummary{
			Label:          label,
			SupportVectors: m.Classes.NSV[c],
			From:           from,
			To:             to,
		}
	}
	for i, df := range functions {
		s.DecisionFunctions[i] = FunctionSummary{
			Labels:  [2]int{m.Classes.Labels[df.Pair.I], m.Classes.Labels[df.Pair.J]},
			SvCount: df.SvCount,
			Rho:     df.Rho,
		}
	}
	return s, nil
}

// YAML renders the summary.
func (s *Summary) YAML() ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("could not render summary: %w", err)
	}
	return b, nil
}
