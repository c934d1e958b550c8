package main

import (
	"fmt"
	"io"

	"github.com/der-teufel-programming/zknight/internal/ast"
	"github.com/der-teufel-programming/zknight/internal/bytecode"
)

// dumpTree writes a parenthesized s-expression rendering of tree to w,
// in the spirit of the teacher's dumper.go but over our flat AST
// instead of a flat-memory FORTH dictionary.
func dumpTree(w io.Writer, tree *ast.Tree) {
	dumpNode(w, tree, tree.Root())
	fmt.Fprintln(w)
}

func dumpNode(w io.Writer, tree *ast.Tree, n ast.NodeIndex) {
	node := tree.Nodes[n]
	switch node.Kind {
	case ast.IntLiteral, ast.StringLiteral, ast.Ident:
		fmt.Fprintf(w, "%v", tree.Text(n))
	case ast.Call:
		fmt.Fprintf(w, "(%v", node.Func)
		for _, arg := range tree.Args(n) {
			fmt.Fprint(w, " ")
			dumpNode(w, tree, arg)
		}
		fmt.Fprint(w, ")")
	default:
		fmt.Fprint(w, "<invalid>")
	}
}

// dumpBytecode writes a disassembly-style listing of prog to w: one
// line per instruction, with Constant and Block operands resolved
// inline so the emitter's jump patching can be inspected directly.
func dumpBytecode(w io.Writer, prog *bytecode.Program) {
	fmt.Fprintf(w, "# %v variables, %v constants, %v blocks\n",
		prog.NumVariables, len(prog.Constants), len(prog.Blocks))
	dumpCode(w, "main", prog.Code, prog)
	for i, blk := range prog.Blocks {
		fmt.Fprintf(w, "block %v:\n", i)
		dumpCode(w, fmt.Sprintf("b%v", i), blk, prog)
	}
}

func dumpCode(w io.Writer, label string, code []bytecode.Instr, prog *bytecode.Program) {
	for i, instr := range code {
		fmt.Fprintf(w, "  %s@%-4d %v", label, i, instr.Op)
		switch instr.Op {
		case bytecode.Constant:
			fmt.Fprint(w, " ")
			prog.Constants[instr.Arg].Dump(w)
		case bytecode.Jump, bytecode.Cond:
			fmt.Fprintf(w, " -> %v", instr.Arg+1)
		case bytecode.LoadVariable, bytecode.StoreVariable, bytecode.Block:
			fmt.Fprintf(w, " %v", instr.Arg)
		}
		fmt.Fprintln(w)
	}
}
