package parser

import (
    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/token"
)

// DefaultMaxDepth bounds statement and group nesting.
const DefaultMaxDepth = 256

type Parser struct {
    toks  []token.Token
    i     int
    depth int

    maxDepth         int
    groupComparisons bool
}

type Option func(*Parser)

// WithMaxDepth sets the nesting limit; values below 1 keep the default.
func WithMaxDepth(n int) Option {
    return func(p *Parser) { if n > 0 { p.maxDepth = n } }
}

// WithGroupComparisons makes a parenthesised group parse a full comparison
// instead of stopping at the additive level, so "(1 < 2)" is accepted.
func WithGroupComparisons(on bool) Option {
    return func(p *Parser) { p.groupComparisons = on }
}

// New wraps a token stream, normally the output of lexer.Lex. The slice is
// never modified.
func New(toks []token.Token, opts ...Option) *Parser {
    p := &Parser{toks: toks, maxDepth: DefaultMaxDepth}
    for _, o := range opts { o(p) }
    return p
}

func (p *Parser) cur() token.Token {
    if p.i >= len(p.toks) {
        return token.Token{Kind: token.EOF}
    }
    return p.toks[p.i]
}

func (p *Parser) next() token.Token {
    t := p.cur()
    if p.i < len(p.toks) { p.i++ }
    return t
}

func (p *Parser) match(kind token.Kind) bool {
    if p.cur().Kind == kind { p.i++; return true }
    return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
    t := p.cur()
    if t.Kind == token.EOF && kind != token.EOF {
        return t, diag.NewEndOfFile()
    }
    if t.Kind != kind {
        return t, diag.NewUnexpectedToken(kind.String(), t)
    }
    p.i++
    return t, nil
}

func (p *Parser) enter() error {
    p.depth++
    if p.depth > p.maxDepth { return diag.NewTooDeep(p.maxDepth) }
    return nil
}

func (p *Parser) leave() { p.depth-- }

// ProduceAST parses every statement up to EOF. It returns either a complete
// program or a *diag.ParserError.
func (p *Parser) ProduceAST() (*Program, error) {
    prog := &Program{Body: []Stmt{}}
    for p.cur().Kind != token.EOF {
        st, err := p.parseStmt()
        if err != nil { return nil, err }
        prog.Body = append(prog.Body, st)
    }
    return prog, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
    if err := p.enter(); err != nil { return nil, err }
    defer p.leave()

    var (
        st  Stmt
        err error
    )
    switch p.cur().Kind {
    case token.If: st, err = p.parseIf()
    case token.While: st, err = p.parseWhile()
    default: st, err = p.parseComparison()
    }
    if err != nil { return nil, err }
    // A single ";" may end any statement. It is never an expression, so
    // ";;" and "1 + ; 2" are still rejected.
    p.match(token.Semicolon)
    return st, nil
}

func (p *Parser) parseBlock() (*BlockStmt, error) {
    if _, err := p.expect(token.OpenBrace); err != nil { return nil, err }
    block := &BlockStmt{Body: []Stmt{}}
    for p.cur().Kind != token.CloseBrace && p.cur().Kind != token.EOF {
        st, err := p.parseStmt()
        if err != nil { return nil, err }
        block.Body = append(block.Body, st)
    }
    if _, err := p.expect(token.CloseBrace); err != nil { return nil, err }
    return block, nil
}

// condition parses "( <comparison> )".
func (p *Parser) condition() (Stmt, error) {
    if _, err := p.expect(token.OpenParen); err != nil { return nil, err }
    cond, err := p.parseComparison()
    if err != nil { return nil, err }
    if _, err := p.expect(token.CloseParen); err != nil { return nil, err }
    return cond, nil
}

func (p *Parser) parseIf() (*IfStmt, error) {
    if _, err := p.expect(token.If); err != nil { return nil, err }
    cond, err := p.condition()
    if err != nil { return nil, err }
    cons, err := p.parseBlock()
    if err != nil { return nil, err }

    stmt := &IfStmt{Condition: cond, Consequent: cons}
    if !p.match(token.Else) { return stmt, nil }

    if p.cur().Kind == token.If {
        if err := p.enter(); err != nil { return nil, err }
        alt, err := p.parseIf()
        p.leave()
        if err != nil { return nil, err }
        stmt.Alternate = alt
        return stmt, nil
    }
    alt, err := p.parseBlock()
    if err != nil { return nil, err }
    stmt.Alternate = alt
    return stmt, nil
}

func (p *Parser) parseWhile() (*WhileStmt, error) {
    if _, err := p.expect(token.While); err != nil { return nil, err }
    cond, err := p.condition()
    if err != nil { return nil, err }
    cons, err := p.parseBlock()
    if err != nil { return nil, err }
    return &WhileStmt{Condition: cond, Consequent: cons}, nil
}

func (p *Parser) parseComparison() (Stmt, error) {
    left, err := p.parseAdditive()
    if err != nil { return nil, err }
    for p.cur().Kind.IsComparison() {
        op := p.next()
        right, err := p.parseAdditive()
        if err != nil { return nil, err }
        left = &BinaryExpr{Left: left, Operator: op.Value, Right: right}
    }
    return left, nil
}

func (p *Parser) parseAdditive() (Stmt, error) {
    left, err := p.parseMultiplicative()
    if err != nil { return nil, err }
    for isBinary(p.cur(), "+", "-") {
        op := p.next()
        right, err := p.parseMultiplicative()
        if err != nil { return nil, err }
        left = &BinaryExpr{Left: left, Operator: op.Value, Right: right}
    }
    return left, nil
}

func (p *Parser) parseMultiplicative() (Stmt, error) {
    left, err := p.parsePrimary()
    if err != nil { return nil, err }
    for isBinary(p.cur(), "*", "/", "%") {
        op := p.next()
        right, err := p.parsePrimary()
        if err != nil { return nil, err }
        left = &BinaryExpr{Left: left, Operator: op.Value, Right: right}
    }
    return left, nil
}

func (p *Parser) parsePrimary() (Stmt, error) {
    t := p.cur()
    switch t.Kind {
    case token.Number:
        p.next()
        return &NumericLiteral{Value: t.Value}, nil
    case token.Identifier:
        p.next()
        return &Identifier{Name: t.Value}, nil
    case token.OpenParen:
        p.next()
        if err := p.enter(); err != nil { return nil, err }
        defer p.leave()
        var (
            expr Stmt
            err  error
        )
        // Groups stop at the additive level unless comparisons are enabled,
        // so "(1 < 2)" leaves "<" for expect(CloseParen) to reject.
        if p.groupComparisons {
            expr, err = p.parseComparison()
        } else {
            expr, err = p.parseAdditive()
        }
        if err != nil { return nil, err }
        if _, err := p.expect(token.CloseParen); err != nil { return nil, err }
        return expr, nil
    case token.Null:
        p.next()
        return nil, diag.NewMissingExpression()
    case token.EOF:
        return nil, diag.NewEndOfFile()
    default:
        return nil, diag.NewUnexpectedToken("number, identifier, or open parenthesis", t)
    }
}

func isBinary(t token.Token, ops ...string) bool {
    if t.Kind != token.Binary { return false }
    for _, op := range ops {
        if t.Value == op { return true }
    }
    return false
}
