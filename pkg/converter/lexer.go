package converter

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"if":    IF,
	"while": WHILE,
	"for":   FOR,
	"in":    IN,
}

// Lexer holds all mutable state for a single scanning pass over src.
// The grammar is indentation-significant, so besides ordinary tokens the
// lexer emits NEWLINE at the end of each logical line and INDENT/DEDENT
// tokens driven by an indentation stack, the way Python tokenizers do.
type Lexer struct {
	src     []rune
	pos     int   // index of the next rune to consume
	line    int   // current 1-based source line
	indents []int // indentation stack; always starts with 0
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, indents: []int{0}}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

// scanIndent measures the leading whitespace of the current line in columns.
// Indentation must be spaces; a tab would make column counts ambiguous.
func (l *Lexer) scanIndent() (int, error) {
	width := 0
	for {
		switch l.peek() {
		case ' ':
			width++
			l.advance()
		case '\t':
			return 0, fmt.Errorf("%w: tab in indentation on line %d", ErrSyntax, l.line)
		default:
			return width, nil
		}
	}
}

// skipSpaces discards inline spaces and tabs (not newlines).
func (l *Lexer) skipSpaces() {
	for l.peek() == ' ' || l.peek() == '\t' {
		l.advance()
	}
}

// atLineEnd reports whether the current position is end-of-line, end-of-input
// or the start of a "#" comment, all of which terminate the logical line.
func (l *Lexer) atLineEnd() bool {
	r := l.peek()
	return r == 0 || r == '\n' || r == '#'
}

// skipRestOfLine discards everything up to and including the newline.
func (l *Lexer) skipRestOfLine() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
	if l.peek() == '\n' {
		l.advance()
	}
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line}
}

// scanNumber collects a decimal integer or float literal.
// The first digit must still be at l.peek().
func (l *Lexer) scanNumber() Token {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peek2()) {
		l.advance() // consume '.'
		for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
			l.advance()
		}
		return Token{Type: FLOAT, Lexeme: string(l.src[start:l.pos]), Line: line}
	}
	return Token{Type: INTEGER, Lexeme: string(l.src[start:l.pos]), Line: line}
}

// scanString collects a string literal quoted with ' or ". The lexeme keeps
// the quotes; string constants are only ever rendered back into comments and
// error messages, never lowered.
func (l *Lexer) scanString() (Token, error) {
	line := l.line
	start := l.pos
	quote := l.advance()
	for l.pos < len(l.src) {
		r := l.peek()
		if r == '\n' {
			return Token{}, fmt.Errorf("%w: unterminated string literal on line %d", ErrSyntax, line)
		}
		l.advance()
		if r == quote {
			return Token{Type: STRING, Lexeme: string(l.src[start:l.pos]), Line: line}, nil
		}
	}
	return Token{}, fmt.Errorf("%w: unterminated string literal on line %d", ErrSyntax, line)
}

// nextToken scans one token inside a logical line. The caller has already
// skipped inline whitespace and checked atLineEnd.
func (l *Lexer) nextToken() (Token, error) {
	ch := l.peek()
	line := l.line

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if unicode.IsDigit(ch) {
		return l.scanNumber(), nil
	}
	if ch == '"' || ch == '\'' {
		return l.scanString()
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '(':
		return Token{LPAREN, "(", line}, nil
	case ')':
		return Token{RPAREN, ")", line}, nil
	case ':':
		return Token{COLON, ":", line}, nil
	case ',':
		return Token{COMMA, ",", line}, nil
	case '=':
		return Token{ASSIGN, "=", line}, nil
	case '+':
		return Token{PLUS, "+", line}, nil
	case '-':
		return Token{MINUS, "-", line}, nil
	case '*':
		return Token{STAR, "*", line}, nil
	case '/':
		return Token{SLASH, "/", line}, nil
	case '<':
		if l.peek() == '=' {
			l.advance()
			return Token{LESS_EQ, "<=", line}, nil
		}
		return Token{LESS, "<", line}, nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return Token{GREATER_EQ, ">=", line}, nil
		}
		return Token{GREATER, ">", line}, nil
	default:
		return Token{}, fmt.Errorf("%w: unexpected character %q on line %d", ErrSyntax, ch, line)
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// Blank and comment-only lines produce no tokens at all; every other line
// ends with a NEWLINE token, and indentation changes surface as INDENT and
// DEDENT tokens around it.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token

	for l.pos < len(l.src) {
		indent, err := l.scanIndent()
		if err != nil {
			return tokens, err
		}
		if l.atLineEnd() {
			l.skipRestOfLine()
			continue
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case indent > top:
			l.indents = append(l.indents, indent)
			tokens = append(tokens, Token{Type: INDENT, Line: l.line})
		case indent < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > indent {
				l.indents = l.indents[:len(l.indents)-1]
				tokens = append(tokens, Token{Type: DEDENT, Line: l.line})
			}
			if l.indents[len(l.indents)-1] != indent {
				return tokens, fmt.Errorf("%w: inconsistent indentation on line %d", ErrSyntax, l.line)
			}
		}

		for {
			l.skipSpaces()
			if l.atLineEnd() {
				break
			}
			tok, err := l.nextToken()
			if err != nil {
				return tokens, err
			}
			tokens = append(tokens, tok)
		}
		line := l.line
		l.skipRestOfLine()
		tokens = append(tokens, Token{Type: NEWLINE, Line: line})
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		tokens = append(tokens, Token{Type: DEDENT, Line: l.line})
	}
	tokens = append(tokens, Token{Type: EOF, Line: l.line})
	return tokens, nil
}
