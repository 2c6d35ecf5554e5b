package converter

import "fmt"

// rewriteFor desugars "for name in range(start, end):" into the equivalent
// init assignment and while loop:
//
//	name = start
//	while name < end:
//	    <original body>
//	    name = name + 1
//
// Both synthesized statements inherit the for statement's line number, so
// the loop labels read loopN/trueN/doneN with the for's own line. The
// rewrite is purely structural; lowering the result is the caller's job.
func rewriteFor(s *For) (*Assign, *While, error) {
	target, ok := s.Target.(*Name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: for target must be a name (%s)", ErrUnsupported, s.Target)
	}
	call, ok := s.Iter.(*Call)
	if !ok || call.Func != "range" {
		return nil, nil, fmt.Errorf("%w: for iterator must be range(start, end), got %s", ErrUnsupported, s.Iter)
	}
	if len(call.Args) != 2 {
		return nil, nil, fmt.Errorf("%w: range takes exactly 2 arguments, got %d", ErrUnsupported, len(call.Args))
	}
	bounds := make([]*Constant, 2)
	for i, arg := range call.Args {
		c, ok := arg.(*Constant)
		if !ok || !c.IsInt {
			return nil, nil, fmt.Errorf("%w: range bounds must be integer literals (%s)", ErrUnsupported, arg)
		}
		bounds[i] = c
	}

	init := &Assign{
		Line:    s.Line,
		Targets: []Expr{&Name{Ident: target.Ident}},
		Value:   bounds[0],
	}
	increment := &Assign{
		Line:    s.Line,
		Targets: []Expr{&Name{Ident: target.Ident}},
		Value: &BinOp{
			Op:    PLUS,
			Left:  &Name{Ident: target.Ident},
			Right: &Constant{Value: 1, IsInt: true, Text: "1"},
		},
	}
	body := make([]Stmt, 0, len(s.Body)+1)
	body = append(body, s.Body...)
	body = append(body, increment)

	loop := &While{
		Line: s.Line,
		Test: &Compare{
			Left:        &Name{Ident: target.Ident},
			Ops:         []TokenType{LESS},
			Comparators: []Expr{bounds[1]},
		},
		Body: body,
	}
	return init, loop, nil
}
