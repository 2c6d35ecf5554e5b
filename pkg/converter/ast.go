package converter

import (
	"fmt"
	"strconv"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
// String renders the node back to source text; the rendering is reused as the
// trailing comment on emitted instructions.
type Expr interface {
	exprNode()
	String() string
}

// Name is a reference to a named variable.
//
//	v = v + i
//	^       ^  Name{Ident: "v"}, Name{Ident: "i"}
type Name struct {
	Ident string
}

func (*Name) exprNode()        {}
func (n *Name) String() string { return n.Ident }

// Constant is a literal value. Only integer constants can be lowered; float
// and string literals still parse so they can be rejected with a precise
// error during lowering.
type Constant struct {
	Value int
	IsInt bool
	Text  string // the literal as written, used for non-integer constants
}

func (*Constant) exprNode() {}
func (c *Constant) String() string {
	if c.IsInt {
		return strconv.Itoa(c.Value)
	}
	return c.Text
}

// BinOp represents a binary arithmetic operation: Left Op Right.
//
//	v + i
//	^ ^ ^
//	| | Right
//	| Op (PLUS, MINUS, STAR or SLASH)
//	Left
type BinOp struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinOp) exprNode() {}
func (b *BinOp) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Op.Symbol(), b.Right)
}

// Compare represents Left op comparator [op comparator ...]. Chained
// comparisons parse but are rejected during lowering, so Ops/Comparators are
// slices rather than single fields.
type Compare struct {
	Left        Expr
	Ops         []TokenType
	Comparators []Expr
}

func (*Compare) exprNode() {}
func (c *Compare) String() string {
	var b strings.Builder
	b.WriteString(c.Left.String())
	for i, op := range c.Ops {
		fmt.Fprintf(&b, " %s %s", op.Symbol(), c.Comparators[i])
	}
	return b.String()
}

// Call represents name(args). The only call the converter accepts is the
// range(start, end) iterator of a for statement; anywhere else it is an
// unsupported construct.
type Call struct {
	Func string
	Args []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Func, strings.Join(args, ", "))
}

// Tuple represents a comma-separated target list, e.g. the left side of
// "a, b = 1". Tuples are never a legal assignment target for the converter.
type Tuple struct {
	Elems []Expr
}

func (*Tuple) exprNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value. Lineno
// reports the 1-based source line the statement starts on; jump labels are
// derived from it.
type Stmt interface {
	stmtNode()
	String() string
	Lineno() int
}

// Assign represents  target [= target ...] = value.
type Assign struct {
	Line    int
	Targets []Expr
	Value   Expr
}

func (*Assign) stmtNode()     {}
func (a *Assign) Lineno() int { return a.Line }
func (a *Assign) String() string {
	var b strings.Builder
	for _, t := range a.Targets {
		b.WriteString(t.String())
		b.WriteString(" = ")
	}
	b.WriteString(a.Value.String())
	return b.String()
}

// If represents  if test: body. There is no else branch in the grammar.
type If struct {
	Line int
	Test Expr
	Body []Stmt
}

func (*If) stmtNode()        {}
func (s *If) Lineno() int    { return s.Line }
func (s *If) String() string { return fmt.Sprintf("if %s:", s.Test) }

// While represents  while test: body.
type While struct {
	Line int
	Test Expr
	Body []Stmt
}

func (*While) stmtNode()        {}
func (s *While) Lineno() int    { return s.Line }
func (s *While) String() string { return fmt.Sprintf("while %s:", s.Test) }

// For represents  for target in iter: body. Iter is kept as a general
// expression so that non-range iterators reach the lowering stage and fail
// there with a precise error rather than at parse time.
type For struct {
	Line   int
	Target Expr
	Iter   Expr
	Body   []Stmt
}

func (*For) stmtNode()        {}
func (s *For) Lineno() int    { return s.Line }
func (s *For) String() string { return fmt.Sprintf("for %s in %s:", s.Target, s.Iter) }

// Module is the root of a parsed program.
type Module struct {
	Body []Stmt
}

func (m *Module) String() string { return fmt.Sprintf("Module(len=%d)", len(m.Body)) }
