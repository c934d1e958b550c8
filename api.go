package main

import (
	"context"

	"github.com/der-teufel-programming/zknight/internal/analyzer"
	"github.com/der-teufel-programming/zknight/internal/ast"
	"github.com/der-teufel-programming/zknight/internal/bytecode"
	"github.com/der-teufel-programming/zknight/internal/emitter"
	"github.com/der-teufel-programming/zknight/internal/panicerr"
	"github.com/der-teufel-programming/zknight/internal/token"
	"github.com/der-teufel-programming/zknight/internal/vm"
)

// Interpreter holds the collaborators and options a compiled program
// runs against. One Interpreter can compile and run many programs.
type Interpreter struct {
	in   vm.LineReader
	out  vm.Output
	rand vm.Rand

	strict    bool
	stepLimit int
	logfn     func(mess string, args ...interface{})
}

// New constructs an Interpreter, following the teacher's New/VMOption
// pattern (api.go/options.go).
func New(opts ...InterpreterOption) *Interpreter {
	var ip Interpreter
	ip.apply(defaultInterpreterOptions...)
	ip.apply(opts...)
	return &ip
}

func (ip *Interpreter) apply(opts ...InterpreterOption) {
	for _, opt := range opts {
		opt.apply(ip)
	}
}

// Parse scans and parses source into an AST, the first two pipeline
// stages, exposed separately so callers (namely -dump-ast) can inspect
// the tree without lowering it.
func (ip *Interpreter) Parse(source string) (*ast.Tree, error) {
	toks := token.NewLexer(source).All()
	p := ast.NewParser(source, toks)
	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return &tree, nil
}

// Compile scans, parses, analyzes, and lowers source into a runnable
// bytecode.Program.
func (ip *Interpreter) Compile(source string) (*bytecode.Program, error) {
	tree, err := ip.Parse(source)
	if err != nil {
		return nil, err
	}

	info := analyzer.Analyze(tree)

	var emitOpts []emitter.Option
	if ip.logfn != nil {
		emitOpts = append(emitOpts, emitter.WithLogf(ip.logfn))
	}
	return emitter.Emit(tree, info, emitOpts...)
}

// Run executes prog to completion, or until ctx is done. The VM's own
// dispatch loop recovers quit signals and abuse-condition halts into
// typed returns; Run wraps that in panicerr.Recover as well, so a bug
// in the VM itself (a bare Go panic, or a stray runtime.Goexit) cannot
// leak out of Run as an unhandled panic.
func (ip *Interpreter) Run(ctx context.Context, prog *bytecode.Program) (res vm.Result, err error) {
	var opts []vm.Option
	opts = append(opts, vm.WithStrict(ip.strict))
	if ip.in != nil {
		opts = append(opts, vm.WithInput(ip.in))
	}
	if ip.out != nil {
		opts = append(opts, vm.WithOutput(ip.out))
	}
	if ip.rand != nil {
		opts = append(opts, vm.WithRand(ip.rand))
	}
	if ip.stepLimit != 0 {
		opts = append(opts, vm.WithStepLimit(ip.stepLimit))
	}
	if ip.logfn != nil {
		opts = append(opts, vm.WithLogf(ip.logfn))
	}

	m := vm.New(prog, opts...)
	err = panicerr.Recover("zknight", func() error {
		var rerr error
		res, rerr = m.Run(ctx)
		return rerr
	})
	return res, err
}

// RunSource is the common case: compile source, then run it.
func (ip *Interpreter) RunSource(ctx context.Context, source string) (vm.Result, error) {
	prog, err := ip.Compile(source)
	if err != nil {
		return vm.Result{}, err
	}
	return ip.Run(ctx, prog)
}
