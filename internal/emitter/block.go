package emitter

import (
	"github.com/der-teufel-programming/zknight/internal/ast"
	"github.com/der-teufel-programming/zknight/internal/bytecode"
)

// emitBlock implements spec.md §4.2.1: `B expr` does not emit into the
// current stream. expr is compiled into a fresh sub-program whose
// constant and block indices are then relocated by this emitter's
// current pool sizes and merged in; the sub-program's code becomes a
// new blocks-table entry, and a single Block(idx) is emitted referring
// to it. The sub-program's body has not executed yet.
func (e *Emitter) emitBlock(body ast.NodeIndex) error {
	sub := &Emitter{tree: e.tree, info: e.info, logf: e.logf, mark: e.mark}
	if err := sub.emitExpr(body); err != nil {
		return err
	}

	constOffset := len(e.constants)
	blockOffset := len(e.blocks)

	e.constants = append(e.constants, sub.constants...)

	relocated := make([][]bytecode.Instr, len(sub.blocks))
	for i, blk := range sub.blocks {
		relocated[i] = relocate(blk, constOffset, blockOffset)
	}
	e.blocks = append(e.blocks, relocated...)

	bodyCode := relocate(sub.code, constOffset, blockOffset)
	idx := len(e.blocks)
	e.blocks = append(e.blocks, bodyCode)

	e.emitArg(bytecode.Block, idx)
	e.trace("block @%v (%v instructions)", idx, len(bodyCode))
	return nil
}

// relocate rewrites a sub-program's Constant and Block index payloads
// by the given offsets into the outer emitter's pools.
func relocate(code []bytecode.Instr, constOffset, blockOffset int) []bytecode.Instr {
	out := make([]bytecode.Instr, len(code))
	for i, instr := range code {
		switch instr.Op {
		case bytecode.Constant:
			instr.Arg += constOffset
		case bytecode.Block:
			instr.Arg += blockOffset
		}
		out[i] = instr
	}
	return out
}
