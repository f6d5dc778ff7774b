package libsvm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

var (
	svmTypePattern    = regexp.MustCompile(`^svm_type\s+(c_svc|nu_svc|one_class|epsilon_svr|nu_svr)\s*$`)
	kernelTypePattern = regexp.MustCompile(`^kernel_type\s+(linear|polynomial|rbf|sigmoid|precomputed)\s*$`)
	degreePattern     = regexp.MustCompile(`^degree\s+(\S+)\s*$`)
	gammaPattern      = regexp.MustCompile(`^gamma\s+(\S+)\s*$`)
	coef0Pattern      = regexp.MustCompile(`^coef0\s+(\S+)\s*$`)
	nrClassPattern    = regexp.MustCompile(`^nr_class\s+(\S+)\s*$`)
	totalSVPattern    = regexp.MustCompile(`^total_sv\s+(\S+)\s*$`)
	rhoPattern        = regexp.MustCompile(`^rho((?:\s+\S+)+)\s*$`)
	labelPattern      = regexp.MustCompile(`^label((?:\s+\S+)+)\s*$`)
	probAPattern      = regexp.MustCompile(`^probA((?:\s+\S+)+)\s*$`)
	probBPattern      = regexp.MustCompile(`^probB((?:\s+\S+)+)\s*$`)
	nrSVPattern       = regexp.MustCompile(`^nr_sv((?:\s+\S+)+)\s*$`)
	separatorPattern  = regexp.MustCompile(`^SV\s*$`)
	featurePattern    = regexp.MustCompile(`^(\d+):(\S+)$`)
)

// MaxCells bounds the dense feature matrix, total_sv times the highest feature index.
const MaxCells = 1 << 27

// field is one header line of the model file.
type field struct {
	key     string
	pattern *regexp.Regexp
	// optional reports whether the line may be absent, given what has been parsed so far.
	optional func(p *parser) bool
	apply    func(p *parser, value string) error
}

func always(*parser) bool { return true }

func never(*parser) bool { return false }

// layout lists the header lines in the order libSVM writes them.
var layout = []field{
	{key: "svm_type", pattern: svmTypePattern, optional: never, apply: func(p *parser, v string) error {
		p.header.SvmType = SvmType(v)
		return nil
	}},
	{key: "kernel_type", pattern: kernelTypePattern, optional: never, apply: func(p *parser, v string) error {
		p.header.KernelType = KernelType(v)
		return nil
	}},
	{key: "degree", pattern: degreePattern, optional: always, apply: func(p *parser, v string) (err error) {
		p.header.Degree, err = strconv.Atoi(v)
		return err
	}},
	{key: "gamma", pattern: gammaPattern, optional: func(p *parser) bool {
		return p.header.KernelType == Linear
	}, apply: func(p *parser, v string) (err error) {
		p.header.Gamma, err = parseFloat(v)
		return err
	}},
	{key: "coef0", pattern: coef0Pattern, optional: always, apply: func(p *parser, v string) (err error) {
		p.header.Coef0, err = parseFloat(v)
		return err
	}},
	{key: "nr_class", pattern: nrClassPattern, optional: never, apply: func(p *parser, v string) (err error) {
		p.nrClass, err = strconv.Atoi(v)
		if err != nil {
			return err
		}
		if p.nrClass < 2 {
			return invariant("line %d: nr_class is %d, at least 2 classes are needed", p.pos, p.nrClass)
		}
		return nil
	}},
	{key: "total_sv", pattern: totalSVPattern, optional: never, apply: func(p *parser, v string) (err error) {
		p.totalSV, err = strconv.Atoi(v)
		if err != nil {
			return err
		}
		if p.totalSV < 1 {
			return invariant("line %d: total_sv is %d, at least one support vector is needed", p.pos, p.totalSV)
		}
		return nil
	}},
	{key: "rho", pattern: rhoPattern, optional: never, apply: func(p *parser, v string) (err error) {
		p.rho, err = p.floats(v, "rho", p.pairs())
		return err
	}},
	{key: "label", pattern: labelPattern, optional: never, apply: func(p *parser, v string) (err error) {
		p.classes.Labels, err = p.ints(v, "label", p.nrClass)
		return err
	}},
	{key: "probA", pattern: probAPattern, optional: always, apply: func(p *parser, v string) (err error) {
		p.probA, err = p.floats(v, "probA", p.pairs())
		return err
	}},
	{key: "probB", pattern: probBPattern, optional: always, apply: func(p *parser, v string) (err error) {
		p.probB, err = p.floats(v, "probB", p.pairs())
		return err
	}},
	{key: "nr_sv", pattern: nrSVPattern, optional: never, apply: func(p *parser, v string) (err error) {
		p.classes.NSV, err = p.ints(v, "nr_sv", p.nrClass)
		if err != nil {
			return err
		}
		for c, n := range p.classes.NSV {
			if n < 0 {
				return invariant("line %d: nr_sv for class %d is negative: %d", p.pos, c, n)
			}
		}
		if total := p.classes.Total(); total != p.totalSV {
			return invariant("line %d: nr_sv adds up to %d but total_sv is %d", p.pos, total, p.totalSV)
		}
		return nil
	}},
	{key: "SV", pattern: separatorPattern, optional: never, apply: func(p *parser, v string) error {
		return nil
	}},
}

// Parse parses the lines of a libSVM model file.
func Parse(lines []string) (*Model, error) {
	p := &parser{lines: lines}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	if err := p.parseSupportVectors(); err != nil {
		return nil, err
	}

	m := &Model{
		Header:   p.header,
		Classes:  p.classes,
		TotalSV:  p.totalSV,
		Rho:      p.rho,
		ProbA:    p.probA,
		ProbB:    p.probB,
		Coef:     mat.NewDense(p.totalSV, p.nrClass-1, p.coef),
		Features: mat.NewDense(p.totalSV, p.width, nil),
	}
	for i, row := range p.sparse {
		for _, f := range row {
			m.Features.Set(i, f.index-1, f.value)
		}
	}

	log.Debug().
		Str("svm_type", string(m.Header.SvmType)).
		Str("kernel_type", string(m.Header.KernelType)).
		Int("nr_class", p.nrClass).
		Int("total_sv", p.totalSV).
		Int("width", p.width).
		Msg("parsed model")
	return m, nil
}

type feature struct {
	index int
	value float64
}

type parser struct {
	lines []string
	pos   int

	header  Header
	classes ClassInfo
	nrClass int
	totalSV int
	rho     []float64
	probA   []float64
	probB   []float64

	coef   []float64
	sparse [][]feature
	width  int
}

func (p *parser) pairs() int {
	return p.nrClass * (p.nrClass - 1) / 2
}

func (p *parser) line() string {
	if p.pos < len(p.lines) {
		return p.lines[p.pos]
	}
	return ""
}

func (p *parser) fail(pattern string, err error) error {
	return &FormatError{
		Line:    p.pos,
		Pattern: pattern,
		Content: p.line(),
		Err:     err,
	}
}

func (p *parser) parseHeader() error {
	for _, f := range layout {
		line := strings.TrimSpace(p.line())
		if f.optional(p) && key(line) != f.key {
			continue
		}
		if p.pos >= len(p.lines) {
			return p.fail(f.pattern.String(), errEOF)
		}
		match := f.pattern.FindStringSubmatch(line)
		if match == nil {
			return p.fail(f.pattern.String(), nil)
		}
		var value string
		if len(match) > 1 {
			value = strings.TrimSpace(match[1])
		}
		if err := f.apply(p, value); err != nil {
			if isInvariant(err) {
				return err
			}
			return p.fail(f.pattern.String(), err)
		}
		p.pos++
	}
	return nil
}

func (p *parser) parseSupportVectors() error {
	// trailing blank lines do not count as support vectors
	end := len(p.lines)
	for end > p.pos && strings.TrimSpace(p.lines[end-1]) == "" {
		end--
	}

	size := p.totalSV
	if n := end - p.pos; n < size {
		size = n
	}
	nCoef := p.nrClass - 1
	p.coef = make([]float64, 0, size*nCoef)
	p.sparse = make([][]feature, 0, size)

	first := p.pos
	for i := 0; i < p.totalSV; i++ {
		if p.pos >= end {
			return invariant("total_sv is %d but only %d support vectors follow line %d", p.totalSV, i, first-1)
		}
		tokens := strings.Fields(p.line())
		if len(tokens) < nCoef {
			return p.fail(svPattern(nCoef), nil)
		}
		for _, t := range tokens[:nCoef] {
			c, err := parseFloat(t)
			if err != nil {
				return p.fail(svPattern(nCoef), err)
			}
			p.coef = append(p.coef, c)
		}
		row := make([]feature, 0, len(tokens)-nCoef)
		last := 0
		for _, t := range tokens[nCoef:] {
			match := featurePattern.FindStringSubmatch(t)
			if match == nil {
				return p.fail(featurePattern.String(), nil)
			}
			index, err := strconv.Atoi(match[1])
			if err != nil {
				return p.fail(featurePattern.String(), err)
			}
			if index <= last {
				return p.fail(featurePattern.String(), errOrder)
			}
			value, err := parseFloat(match[2])
			if err != nil {
				return p.fail(featurePattern.String(), err)
			}
			row = append(row, feature{index: index, value: value})
			last = index
		}
		if int64(last)*int64(p.totalSV) > MaxCells {
			return invariant("line %d: feature index %d over %d support vectors exceeds %d matrix cells", p.pos, last, p.totalSV, MaxCells)
		}
		if last > p.width {
			p.width = last
		}
		p.sparse = append(p.sparse, row)
		p.pos++
	}

	if p.pos < end {
		return invariant("total_sv is %d but line %d holds more content", p.totalSV, p.pos)
	}

	if p.width == 0 {
		return invariant("none of the %d support vectors carries a feature", p.totalSV)
	}
	return nil
}

func (p *parser) floats(v, name string, n int) ([]float64, error) {
	tokens := strings.Fields(v)
	if len(tokens) != n {
		return nil, invariant("line %d: %s has %d values, expected %d", p.pos, name, len(tokens), n)
	}
	ff := make([]float64, n)
	for i, t := range tokens {
		f, err := parseFloat(t)
		if err != nil {
			return nil, err
		}
		ff[i] = f
	}
	return ff, nil
}

func (p *parser) ints(v, name string, n int) ([]int, error) {
	tokens := strings.Fields(v)
	if len(tokens) != n {
		return nil, invariant("line %d: %s has %d values, expected %d", p.pos, name, len(tokens), n)
	}
	ii := make([]int, n)
	for i, t := range tokens {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		ii[i] = n
	}
	return ii, nil
}

// parseFloat only accepts finite numbers.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

func key(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}

func svPattern(n int) string {
	return fmt.Sprintf(`^(\S+\s+){%d}(\d+:\S+\s*)*$`, n)
}
