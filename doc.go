/*
Package main implements an interpreter for Knight, a small dynamically
typed expression language: every program is one expression, built out
of prefix function calls over numbers, strings, lists, booleans, and
deferred code blocks.

The pipeline is a straight line: internal/token scans source text into
a flat token stream; internal/ast parses that stream into a flat,
arena-indexed AST; internal/analyzer assigns each distinct identifier a
dense variable slot; internal/emitter lowers the AST into linear
bytecode, patching jumps for short-circuit booleans, WHILE, and IF, and
compiling BLOCK bodies into a separate table without executing them;
internal/vm runs the resulting bytecode.Program against a value stack.

Section 1: see internal/token, internal/ast -- the front end.
Section 2: see internal/emitter -- bytecode generation, the hardest
part of the front end, because of jump patching and BLOCK/CALL's
deferred-compilation semantics.
Section 3: see internal/vm -- execution, the hardest part of the
system, because of Knight's type-coercing operators and BLOCK/CALL's
global-only variable scoping.
*/
package main
