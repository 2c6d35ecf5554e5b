package converter

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INTEGER    // decimal integer literal
	FLOAT      // decimal float literal, e.g. 1.5
	STRING     // string literal '...' or "..."

	// Keywords
	IF    // "if"
	WHILE // "while"
	FOR   // "for"
	IN    // "in"

	// Layout (the grammar is indentation-significant)
	NEWLINE // end of a logical line
	INDENT  // indentation increased
	DEDENT  // indentation decreased

	// Delimiters
	LPAREN // (
	RPAREN // )
	COLON  // :
	COMMA  // ,

	// Operators
	ASSIGN // =
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /

	// Comparisons  (order matters: LESS before LESS_EQ in scanning only)
	LESS       // <
	GREATER    // >
	LESS_EQ    // <=
	GREATER_EQ // >=
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	IF:         "IF",
	WHILE:      "WHILE",
	FOR:        "FOR",
	IN:         "IN",
	NEWLINE:    "NEWLINE",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COLON:      "COLON",
	COMMA:      "COMMA",
	ASSIGN:     "ASSIGN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	LESS:       "LESS",
	GREATER:    "GREATER",
	LESS_EQ:    "LESS_EQ",
	GREATER_EQ: "GREATER_EQ",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// opSymbols maps operator tokens back to their source spelling, used when a
// node is pretty-printed into an instruction comment.
var opSymbols = map[TokenType]string{
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	LESS:       "<",
	GREATER:    ">",
	LESS_EQ:    "<=",
	GREATER_EQ: ">=",
}

// Symbol returns the source spelling of an operator token, or its name for
// non-operator tokens.
func (tt TokenType) Symbol() string {
	if s, ok := opSymbols[tt]; ok {
		return s
	}
	return tt.String()
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
