package converter

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	module     = { statement } EOF
//	statement  = assign | if | while | for
//	assign     = targetList "=" { targetList "=" } expression NEWLINE
//	targetList = IDENTIFIER { "," IDENTIFIER }
//	expression = comparison
//	comparison = additive { ("<" | ">" | "<=" | ">=") additive }
//	additive   = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = primary { ("*" | "/") primary }
//	primary    = INTEGER | FLOAT | STRING | "(" expression ")"
//	           | IDENTIFIER [ "(" [ expression { "," expression } ] ")" ]
//	if         = "if" expression ":" suite
//	while      = "while" expression ":" suite
//	for        = "for" IDENTIFIER "in" primary ":" suite
//	suite      = assign | NEWLINE INDENT statement { statement } DEDENT
//
// The parser accepts more than the lowering engine supports (chained
// comparisons, calls, tuple targets, nested arithmetic, non-integer
// constants); those shapes are rejected later with non-syntax errors.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// fmtError wraps an error message with the source line where the token appears.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	lineIdx := tok.Line - 1 // Lines are 1-based

	snippet := "<source unavailable>"
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}

	return fmt.Errorf("%w: line %d: %s\n  |> %s", ErrSyntax, tok.Line, msg, snippet)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s %q", tt, tok.Type, tok.Lexeme)
	}
	return tok, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.peek().Type {
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case IDENTIFIER:
		return p.parseAssign()
	default:
		return nil, p.fmtError(p.peek(), "expected a statement, got %s %q", p.peek().Type, p.peek().Lexeme)
	}
}

// lookaheadIsTargetGroup reports whether the upcoming tokens form another
// "name[, name...] =" assignment target group, which distinguishes
// "a = b = 5" from "a = b".
func (p *Parser) lookaheadIsTargetGroup() bool {
	i := 0
	if p.peekAt(i).Type != IDENTIFIER {
		return false
	}
	i++
	for p.peekAt(i).Type == COMMA {
		i++
		if p.peekAt(i).Type != IDENTIFIER {
			return false
		}
		i++
	}
	return p.peekAt(i).Type == ASSIGN
}

// parseTargetList parses "name[, name...]". A single name yields a Name node,
// several yield a Tuple (which the lowering engine then rejects).
func (p *Parser) parseTargetList() (Expr, error) {
	first, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	elems := []Expr{&Name{Ident: first.Lexeme}}
	for p.peek().Type == COMMA {
		p.advance()
		tok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		elems = append(elems, &Name{Ident: tok.Lexeme})
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &Tuple{Elems: elems}, nil
}

func (p *Parser) parseAssign() (Stmt, error) {
	line := p.peek().Line
	var targets []Expr
	for {
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}
		if !p.lookaheadIsTargetGroup() {
			break
		}
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	return &Assign{Line: line, Targets: targets, Value: value}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	line := p.advance().Line // consume "if"
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &If{Line: line, Test: test, Body: body}, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	line := p.advance().Line // consume "while"
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &While{Line: line, Test: test, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	line := p.advance().Line // consume "for"
	target, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	iter, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &For{Line: line, Target: &Name{Ident: target.Lexeme}, Iter: iter, Body: body}, nil
}

// parseSuite parses the body of a compound statement: either a single
// assignment on the same line ("if a > 2: a = 7") or an indented block.
func (p *Parser) parseSuite() ([]Stmt, error) {
	if p.peek().Type != NEWLINE {
		switch p.peek().Type {
		case IF, WHILE, FOR:
			return nil, p.fmtError(p.peek(), "compound statement not allowed on the same line")
		}
		stmt, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return []Stmt{stmt}, nil
	}
	p.advance() // consume NEWLINE
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}
	var body []Stmt
	for p.peek().Type != DEDENT && p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	var ops []TokenType
	var comparators []Expr
	for {
		switch p.peek().Type {
		case LESS, GREATER, LESS_EQ, GREATER_EQ:
			op := p.advance().Type
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
			comparators = append(comparators, right)
		default:
			if len(ops) == 0 {
				return left, nil
			}
			return &Compare{Left: left, Ops: ops, Comparators: comparators}, nil
		}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == PLUS || p.peek().Type == MINUS {
		op := p.advance().Type
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == STAR || p.peek().Type == SLASH {
		op := p.advance().Type
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case INTEGER:
		value, err := strconv.Atoi(tok.Lexeme)
		if err != nil {
			return nil, p.fmtError(tok, "invalid integer literal %q", tok.Lexeme)
		}
		return &Constant{Value: value, IsInt: true, Text: tok.Lexeme}, nil

	case FLOAT, STRING:
		return &Constant{IsInt: false, Text: tok.Lexeme}, nil

	case IDENTIFIER:
		if p.peek().Type != LPAREN {
			return &Name{Ident: tok.Lexeme}, nil
		}
		p.advance() // consume "("
		var args []Expr
		if p.peek().Type != RPAREN {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().Type != COMMA {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &Call{Func: tok.Lexeme, Args: args}, nil

	case LPAREN:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.fmtError(tok, "expected an expression, got %s %q", tok.Type, tok.Lexeme)
	}
}

// Parse builds the module AST from the token stream. rawSource is only used
// to quote the offending line in error messages.
func Parse(tokens []Token, rawSource string) (*Module, error) {
	p := NewParser(tokens, rawSource)
	var body []Stmt
	for p.peek().Type != EOF {
		if p.peek().Type == NEWLINE {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return &Module{Body: body}, nil
}
