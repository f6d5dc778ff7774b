package convert

import (
	"fmt"

	"github.com/drakos74/svm2cv/internal/libsvm"
	"github.com/drakos74/svm2cv/internal/metrics"
	"github.com/drakos74/svm2cv/internal/opencv"
	"github.com/drakos74/svm2cv/internal/ovo"
	"github.com/drakos74/svm2cv/internal/storage"
	"github.com/drakos74/svm2cv/internal/storage/file"
	"github.com/rs/zerolog/log"
)

// Result describes a completed conversion.
type Result struct {
	Classes           int
	SupportVectors    int
	Features          int
	DecisionFunctions int
	Bytes             int
}

// Converter runs conversions and keeps track of them.
type Converter struct {
	metrics *metrics.Metrics
}

// New creates a new converter reporting to the given metrics.
func New(m *metrics.Metrics) *Converter {
	if m == nil {
		m = metrics.New()
	}
	return &Converter{metrics: m}
}

// Convert converts the configured input file into the configured output file.
func (c *Converter) Convert(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		c.metrics.Failure()
		return nil, err
	}
	src, dst := file.New(cfg.Input), file.New(cfg.Output)
	log.Info().Str("input", src.Path()).Str("output", dst.Path()).Str("model", cfg.Model).Msg("converting")
	return c.Run(src, dst, cfg.Model)
}

// Run parses the model from the source, reconstructs its decision functions and
// stores the rendered document in the sink.
// The sink is only touched once the whole document is rendered.
func (c *Converter) Run(src storage.Source, dst storage.Sink, name string) (*Result, error) {
	result, err := c.run(src, dst, name)
	if err != nil {
		c.metrics.Failure()
		log.Error().Err(err).Msg("conversion failed")
		return nil, err
	}
	c.metrics.Success(result.Classes, result.SupportVectors, result.Features, result.DecisionFunctions)
	log.Info().
		Int("classes", result.Classes).
		Int("support_vectors", result.SupportVectors).
		Int("features", result.Features).
		Int("decision_functions", result.DecisionFunctions).
		Int("bytes", result.Bytes).
		Msg("converted model")
	return result, nil
}

func (c *Converter) run(src storage.Source, dst storage.Sink, name string) (*Result, error) {
	m, functions, err := Load(src)
	if err != nil {
		return nil, err
	}

	doc, err := opencv.Build(name, m, functions)
	if err != nil {
		return nil, fmt.Errorf("could not build document: %w", err)
	}
	payload, err := opencv.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if err := dst.Store(payload); err != nil {
		return nil, err
	}

	return &Result{
		Classes:           m.Classes.NrClass(),
		SupportVectors:    m.TotalSV,
		Features:          m.Width(),
		DecisionFunctions: len(functions),
		Bytes:             len(payload),
	}, nil
}

// Load parses the model from the source and reconstructs its one-vs-one decision functions.
func Load(src storage.Source) (*libsvm.Model, []ovo.DecisionFunction, error) {
	lines, err := src.Lines()
	if err != nil {
		return nil, nil, err
	}

	m, err := libsvm.Parse(lines)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse model: %w", err)
	}

	functions, err := ovo.Reconstruct(m.Classes, m.Rho, m.Coef)
	if err != nil {
		return nil, nil, fmt.Errorf("could not reconstruct decision functions: %w", err)
	}

	want := m.Classes.NrClass() - 1
	for row, n := range ovo.Coverage(functions, m.TotalSV) {
		if n != want {
			return nil, nil, fmt.Errorf("support vector %d is part of %d decision functions instead of %d: %w", row, n, want, libsvm.InvariantErr)
		}
	}
	log.Debug().Int("decision_functions", len(functions)).Msg("reconstructed decision functions")

	return m, functions, nil
}
