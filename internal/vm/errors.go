package vm

import "errors"

var (
	errStackUnderflow = errors.New("stack underflow")
	errStepLimit      = errors.New("step limit exceeded")
	errBadCall        = errors.New("CALL of a non-Block value")
	errNoInput        = errors.New("no input source configured")
	errNoOutput       = errors.New("no output sink configured")
)

// halt unwinds every nested CALL frame up to Run's recover, exactly
// like the teacher's VM.halt.
func (m *Machine) halt(err error) {
	panic(haltError{err})
}
