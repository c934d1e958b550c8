package emitter

import "github.com/der-teufel-programming/zknight/internal/logio"

// Option configures an Emitter, following the teacher's VMOption
// functional-options idiom (options.go/api.go).
type Option interface{ apply(e *Emitter) }

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(e *Emitter) {
	e.logf = f
	e.mark = logio.NewMark(f)
}

// WithLogf enables trace logging of each lowering step, mirroring the
// teacher's WithLogf.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfOption(logfn) }
