package ast

import "github.com/der-teufel-programming/zknight/internal/token"

// Parser is a recursive-descent parser over a Token stream, arity
// driven: every function token consumes exactly as many sub-expressions
// as token.Arity reports for it. The grammar has no precedence to
// speak of — Knight's prefix notation makes every function call
// unambiguous by construction.
type Parser struct {
	src  string
	toks []token.Token
	pos  int

	tree Tree
}

// NewParser returns a Parser over toks, scanned from src.
func NewParser(src string, toks []token.Token) *Parser {
	return &Parser{src: src, toks: toks, tree: Tree{Source: src}}
}

// Parse consumes the entire token stream as one expression, returning
// the resulting Tree. Trailing tokens after a complete expression (other
// than EOF) are reported as a *token.PosError.
func (p *Parser) Parse() (Tree, error) {
	if _, err := p.parseExpr(); err != nil {
		return Tree{}, err
	}
	if tok := p.peek(); tok.Kind != token.EOF {
		return Tree{}, p.errorf(tok, "unexpected trailing token after complete expression")
	}
	return p.tree, nil
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(tok token.Token, msg string) error {
	return &token.PosError{Index: p.pos, Kind: tok.Kind, Text: tok.Text(p.src), Msg: msg}
}

// skipOpenParens consumes any run of decorative '(' tokens, returning the
// count so the caller can require a matching number of ')' after the
// expression they wrap.
func (p *Parser) skipOpenParens() int {
	n := 0
	for p.peek().Kind == token.LParen {
		p.advance()
		n++
	}
	return n
}

func (p *Parser) skipCloseParens(n int) error {
	for ; n > 0; n-- {
		tok := p.peek()
		if tok.Kind != token.RParen {
			return p.errorf(tok, "expected ')' to close parenthesized expression")
		}
		p.advance()
	}
	return nil
}

// parseExpr parses one complete expression (a literal, an identifier
// load, or a function application with its full argument list),
// allocating the node for it before recursing into any arguments so
// that the very first call (the program's root) lands at NodeIndex 0.
func (p *Parser) parseExpr() (NodeIndex, error) {
	opens := p.skipOpenParens()
	idx, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if err := p.skipCloseParens(opens); err != nil {
		return 0, err
	}
	return idx, nil
}

func (p *Parser) parsePrimary() (NodeIndex, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLiteral:
		p.advance()
		return p.push(Node{Kind: IntLiteral, Start: tok.Start, End: tok.End}), nil

	case token.StringLiteral:
		p.advance()
		return p.push(Node{Kind: StringLiteral, Start: tok.Start, End: tok.End}), nil

	case token.Identifier:
		p.advance()
		return p.push(Node{Kind: Ident, Start: tok.Start, End: tok.End}), nil

	case token.SymbolFunction, token.WordFunction:
		return p.parseCall(tok)

	case token.EOF:
		return 0, p.errorf(tok, "unexpected end of input, expected an expression")

	default:
		return 0, p.errorf(tok, "unexpected token, expected an expression")
	}
}

func (p *Parser) parseCall(tok token.Token) (NodeIndex, error) {
	fn, ok := p.lookupFunc(tok)
	if !ok {
		return 0, p.errorf(tok, "unrecognized function token")
	}
	arity, ok := token.Arity(fn)
	if !ok {
		return 0, p.errorf(tok, "unrecognized function identity")
	}
	p.advance()

	// Reserve this call's node before parsing its arguments, so a
	// program whose first token is a call still roots at index 0.
	idx := p.push(Node{Kind: Call, Func: fn})

	// Reserve this call's own argument slots before recursing: a
	// nested call argument pushes its own children into this same
	// arena first, so childStart must be fixed up front rather than
	// read off len(p.tree.Children) after the fact, or it would drift
	// onto the nested call's grandchildren instead of its own.
	childStart := uint32(len(p.tree.Children))
	for i := 0; i < arity; i++ {
		p.tree.Children = append(p.tree.Children, 0)
	}
	for i := 0; i < arity; i++ {
		argIdx, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.tree.Children[int(childStart)+i] = argIdx
	}

	node := &p.tree.Nodes[idx]
	node.ChildStart = childStart
	node.ChildCount = uint32(arity)
	return idx, nil
}

func (p *Parser) lookupFunc(tok token.Token) (token.Func, bool) {
	text := tok.Text(p.src)
	if tok.Kind == token.SymbolFunction {
		return token.LookupSymbol(text[0])
	}
	return token.LookupWord(text[0])
}

func (p *Parser) push(n Node) NodeIndex {
	p.tree.Nodes = append(p.tree.Nodes, n)
	return NodeIndex(len(p.tree.Nodes) - 1)
}
