package main

import (
	"io"

	"github.com/der-teufel-programming/zknight/internal/fileinput"
	"github.com/der-teufel-programming/zknight/internal/flushio"
)

// newPromptInput wraps r as a vm.LineReader, reusing the teacher's
// fileinput.Input line-tracking reader for PROMPT's interactive input
// stream rather than, as in the teacher, a FIRST/THIRD source queue.
func newPromptInput(r io.Reader) *fileinput.Input {
	return &fileinput.Input{Queue: []io.Reader{r}}
}

// newOutput wraps w as a flushio.WriteFlusher for OUTPUT and DUMP,
// following the teacher's options.go withOutput.
func newOutput(w io.Writer) flushio.WriteFlusher {
	return flushio.NewWriteFlusher(w)
}
