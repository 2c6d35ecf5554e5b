package converter

import (
	"errors"
	"testing"
)

func rangeFor(line int, body []Stmt, args ...Expr) *For {
	return &For{
		Line:   line,
		Target: &Name{Ident: "i"},
		Iter:   &Call{Func: "range", Args: args},
		Body:   body,
	}
}

func intConst(v int, text string) *Constant {
	return &Constant{Value: v, IsInt: true, Text: text}
}

func TestRewriteFor(t *testing.T) {
	body := []Stmt{&Assign{
		Line:    8,
		Targets: []Expr{&Name{Ident: "v"}},
		Value:   &BinOp{Op: PLUS, Left: &Name{Ident: "v"}, Right: &Name{Ident: "i"}},
	}}
	init, loop, err := rewriteFor(rangeFor(7, body, intConst(5, "5"), intConst(20, "20")))
	if err != nil {
		t.Fatalf("rewriteFor failed: %v", err)
	}

	if init.Line != 7 || loop.Line != 7 {
		t.Errorf("lines = %d/%d, want 7/7 (inherited from the for)", init.Line, loop.Line)
	}
	if init.String() != "i = 5" {
		t.Errorf("init = %q, want %q", init.String(), "i = 5")
	}
	if loop.String() != "while i < 20:" {
		t.Errorf("loop = %q, want %q", loop.String(), "while i < 20:")
	}
	if len(loop.Body) != 2 {
		t.Fatalf("got %d loop body statements, want 2 (original + increment)", len(loop.Body))
	}
	if loop.Body[0] != body[0] {
		t.Error("original body statement should come first")
	}
	if loop.Body[1].String() != "i = i + 1" {
		t.Errorf("increment = %q, want %q", loop.Body[1].String(), "i = i + 1")
	}
}

func TestRewriteForErrors(t *testing.T) {
	body := []Stmt{&Assign{Line: 2, Targets: []Expr{&Name{Ident: "a"}}, Value: intConst(1, "1")}}
	tests := []struct {
		name string
		stmt *For
	}{
		{
			name: "iterator is a name",
			stmt: &For{Line: 1, Target: &Name{Ident: "x"}, Iter: &Name{Ident: "some_list"}, Body: body},
		},
		{
			name: "iterator is another call",
			stmt: &For{Line: 1, Target: &Name{Ident: "x"}, Iter: &Call{Func: "items", Args: nil}, Body: body},
		},
		{
			name: "one range argument",
			stmt: rangeFor(1, body, intConst(5, "5")),
		},
		{
			name: "three range arguments",
			stmt: rangeFor(1, body, intConst(1, "1"), intConst(9, "9"), intConst(2, "2")),
		},
		{
			name: "name as range bound",
			stmt: rangeFor(1, body, intConst(1, "1"), &Name{Ident: "n"}),
		},
		{
			name: "float range bound",
			stmt: rangeFor(1, body, intConst(1, "1"), &Constant{Text: "2.5"}),
		},
		{
			name: "tuple target",
			stmt: &For{Line: 1, Target: &Tuple{Elems: []Expr{&Name{Ident: "a"}, &Name{Ident: "b"}}},
				Iter: &Call{Func: "range", Args: []Expr{intConst(1, "1"), intConst(2, "2")}}, Body: body},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := rewriteFor(tt.stmt)
			if err == nil {
				t.Fatal("rewriteFor succeeded, want error")
			}
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("got %v, want ErrUnsupported", err)
			}
		})
	}
}
