package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/der-teufel-programming/zknight/internal/logio"
)

func main() {
	ctx := context.Background()

	var (
		expr      string
		file      string
		trace     bool
		lenient   bool
		stepLimit int
		timeout   time.Duration
		dumpAST   bool
		dumpBC    bool
	)
	flag.StringVar(&expr, "e", "", "run the given expression instead of reading -f")
	flag.StringVar(&file, "f", "", "run the program in the given file")
	flag.BoolVar(&trace, "trace", false, "enable trace logging of emitted bytecode and VM dispatch")
	flag.BoolVar(&lenient, "lenient", false, "use lenient (non-sanitizing) abuse-condition handling")
	flag.IntVar(&stepLimit, "step-limit", 0, "abort after executing this many VM instructions (0 disables)")
	flag.DurationVar(&timeout, "timeout", 0, "abort after this long (0 disables)")
	flag.BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST and exit without running")
	flag.BoolVar(&dumpBC, "dump-bytecode", false, "print the emitted bytecode and exit without running")
	flag.Parse()

	logger := &logio.Logger{}
	logger.SetOutput(os.Stderr)

	source, err := loadProgramSource(expr, file)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(logger.ExitCode())
	}

	seed := uint64(time.Now().UnixNano())
	var opts = []InterpreterOption{
		WithStrict(!lenient),
		WithInput(newPromptInput(os.Stdin)),
		WithOutput(newOutput(os.Stdout)),
		WithRand(randAdapter{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}),
	}
	if trace {
		opts = append(opts, WithLogf(logger.Leveledf("TRACE")))
	}
	if stepLimit != 0 {
		opts = append(opts, WithStepLimit(stepLimit))
	}
	ip := New(opts...)

	if dumpAST {
		tree, err := ip.Parse(source)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(logger.ExitCode())
		}
		dumpTree(os.Stdout, tree)
		return
	}

	prog, err := ip.Compile(source)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(logger.ExitCode())
	}

	if dumpBC {
		dumpBytecode(os.Stdout, prog)
		return
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := ip.Run(ctx, prog)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(logger.ExitCode())
	}
	if res.Quit {
		os.Exit(int(res.Code))
	}
}

// randAdapter satisfies internal/vm.Rand (Int63() int64) over a
// math/rand/v2 source, whose Int64 already returns a non-negative
// 63-bit integer.
type randAdapter struct{ r *rand.Rand }

func (a randAdapter) Int63() int64 { return a.r.Int64() }

// loadProgramSource resolves -e/-f into source text, per spec.md §6:
// -e takes precedence when both are given.
func loadProgramSource(expr, file string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if file == "" {
		return "", fmt.Errorf("one of -e or -f is required")
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
