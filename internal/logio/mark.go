package logio

import (
	"fmt"
	"strings"
)

// Mark implements aligned-prefix trace logging: each call's mark string
// is left-padded to the widest mark seen so far, so a stream of
// differently-named trace lines stays columnar. Adapted from the
// teacher's core.go logging type.
type Mark struct {
	logf  func(mess string, args ...interface{})
	width int
}

// NewMark wraps logf, or returns nil if logf is nil so that a nil *Mark
// is always safe to call Logf on.
func NewMark(logf func(mess string, args ...interface{})) *Mark {
	if logf == nil {
		return nil
	}
	return &Mark{logf: logf}
}

// Logf logs "mark message" through the wrapped logf, padding mark to
// this Mark's running max width.
func (lm *Mark) Logf(mark, mess string, args ...interface{}) {
	if lm == nil || lm.logf == nil {
		return
	}
	if n := lm.width - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		lm.width = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	lm.logf("%v %v", mark, mess)
}
