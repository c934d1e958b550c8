package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "const", Constant.String())
	assert.Equal(t, "unknown", Op(9999).String())
}

func TestHasArgDistinguishesPayloadOps(t *testing.T) {
	for _, op := range []Op{Jump, Cond, LoadVariable, StoreVariable, Block, Constant} {
		assert.True(t, op.HasArg(), op.String())
	}
	for _, op := range []Op{Nop, True, False, Add, Dump, Invalid} {
		assert.False(t, op.HasArg(), op.String())
	}
}
