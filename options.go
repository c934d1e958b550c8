package main

import "github.com/der-teufel-programming/zknight/internal/vm"

// InterpreterOption configures an Interpreter, following the teacher's
// VMOption functional-options idiom.
type InterpreterOption interface{ apply(ip *Interpreter) }

var defaultInterpreterOptions = []InterpreterOption{
	strictOption(true),
}

type strictOption bool

func (s strictOption) apply(ip *Interpreter) { ip.strict = bool(s) }

// WithStrict selects strict or lenient abuse-condition handling; see
// internal/vm.WithStrict.
func WithStrict(strict bool) InterpreterOption { return strictOption(strict) }

type inputOption struct{ r vm.LineReader }

func (o inputOption) apply(ip *Interpreter) { ip.in = o.r }

// WithInput sets the collaborator PROMPT reads lines from.
func WithInput(r vm.LineReader) InterpreterOption { return inputOption{r} }

type outputOption struct{ w vm.Output }

func (o outputOption) apply(ip *Interpreter) { ip.out = o.w }

// WithOutput sets the collaborator OUTPUT and DUMP write to.
func WithOutput(w vm.Output) InterpreterOption { return outputOption{w} }

type randOption struct{ r vm.Rand }

func (o randOption) apply(ip *Interpreter) { ip.rand = o.r }

// WithRand sets the collaborator RANDOM draws from.
func WithRand(r vm.Rand) InterpreterOption { return randOption{r} }

type stepLimitOption int

func (n stepLimitOption) apply(ip *Interpreter) { ip.stepLimit = int(n) }

// WithStepLimit caps the number of instructions a run may execute,
// mirroring the teacher's WithMemLimit.
func WithStepLimit(n int) InterpreterOption { return stepLimitOption(n) }

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(ip *Interpreter) { ip.logfn = f }

// WithLogf enables trace logging of both the emitter's lowering and the
// VM's dispatch loop, mirroring the teacher's WithLogf.
func WithLogf(logfn func(mess string, args ...interface{})) InterpreterOption {
	return logfOption(logfn)
}
