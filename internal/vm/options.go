package vm

import "github.com/der-teufel-programming/zknight/internal/logio"

// Option configures a Machine, following the teacher's VMOption
// functional-options idiom.
type Option interface{ apply(m *Machine) }

var defaultOptions = []Option{
	strictOption(true),
}

type strictOption bool

func (s strictOption) apply(m *Machine) { m.strict = bool(s) }

// WithStrict selects strict (sanitizing) mode when strict is true, or
// lenient mode when false, per spec.md §7.
func WithStrict(strict bool) Option { return strictOption(strict) }

type inputOption struct{ r LineReader }

func (o inputOption) apply(m *Machine) { m.in = o.r }

// WithInput sets the collaborator Prompt reads lines from.
func WithInput(r LineReader) Option { return inputOption{r} }

type outputOption struct{ w Output }

func (o outputOption) apply(m *Machine) { m.out = o.w }

// WithOutput sets the collaborator Output and Dump write to.
func WithOutput(w Output) Option { return outputOption{w} }

type randOption struct{ r Rand }

func (o randOption) apply(m *Machine) { m.rand = o.r }

// WithRand sets the collaborator Random draws from.
func WithRand(r Rand) Option { return randOption{r} }

type stepLimitOption int

func (n stepLimitOption) apply(m *Machine) { m.stepLimit = int(n) }

// WithStepLimit caps the number of instructions Run will execute
// before halting with an abuse-resistance error, mirroring the
// teacher's WithMemLimit.
func WithStepLimit(n int) Option { return stepLimitOption(n) }

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(m *Machine) {
	m.logf = f
	m.mark = logio.NewMark(f)
}

// WithLogf enables trace logging of the dispatch loop, mirroring the
// teacher's WithLogf.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfOption(logfn) }
