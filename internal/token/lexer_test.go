package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexerBasicTokens(t *testing.T) {
	toks := NewLexer(`+ 12 "hi" 'lo' foo BLOCK B ( ) `).All()
	assert.Equal(t, []Kind{
		SymbolFunction, IntLiteral, StringLiteral, StringLiteral,
		Identifier, WordFunction, WordFunction, LParen, RParen, EOF,
	}, kinds(toks))
}

func TestLexerWordFunctionCollapsesTrailingLetters(t *testing.T) {
	toks := NewLexer("BLOCK B").All()
	assert.Equal(t, "BLOCK", toks[0].Text("BLOCK B"))
	assert.Equal(t, "B", toks[1].Text("BLOCK B"))
	fn1, ok1 := LookupWord(toks[0].Text("BLOCK B")[0])
	fn2, ok2 := LookupWord(toks[1].Text("BLOCK B")[0])
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, fn1, fn2, "BLOCK and B must tokenize to the same function identity")
}

func TestLexerStringLiteralNoEscapeProcessing(t *testing.T) {
	src := `"a\nb"`
	toks := NewLexer(src).All()
	assert.Equal(t, StringLiteral, toks[0].Kind)
	assert.Equal(t, `a\nb`, toks[0].Text(src), "Knight strings are raw bytes, no escape processing")
}

func TestLexerUnterminatedStringIsInvalid(t *testing.T) {
	toks := NewLexer(`"unterminated`).All()
	assert.Equal(t, Invalid, toks[0].Kind)
}

func TestLexerSkipsCommentsToEndOfLine(t *testing.T) {
	src := "1 # this is a comment\n+ 2 3"
	toks := NewLexer(src).All()
	assert.Equal(t, []Kind{IntLiteral, SymbolFunction, IntLiteral, IntLiteral, EOF}, kinds(toks))
}

func TestLexerIdentifier(t *testing.T) {
	src := "foo_bar2"
	toks := NewLexer(src).All()
	assert.Equal(t, Identifier, toks[0].Kind)
	assert.Equal(t, src, toks[0].Text(src))
}

func TestLexerInvalidByte(t *testing.T) {
	toks := NewLexer("$").All()
	assert.Equal(t, Invalid, toks[0].Kind)
}
