package converter

import "fmt"

//  Emission units

// Unit is one element of the emission stream produced by lowering: either a
// concrete instruction or a label pending attachment to the next instruction.
// The stream is append-only and mirrors source evaluation order plus the
// control edges inserted by lowering.
type Unit interface {
	unitNode()
}

// Instr is a single assembly instruction. Comment, when set, reproduces the
// source text the instruction was lowered from; it is attached in a fixed
// column by the linearizer and has no semantic effect.
type Instr struct {
	Text    string
	Comment string
}

func (Instr) unitNode() {}

// PendingLabel marks a position whose name must be attached to the next
// emitted instruction by the linearizer.
type PendingLabel struct {
	Name string
}

func (PendingLabel) unitNode() {}

//  Lowering

// arithMnemonics maps arithmetic operator tokens to their instructions.
var arithMnemonics = map[TokenType]string{
	PLUS:  "add",
	MINUS: "sub",
	STAR:  "mul",
	SLASH: "div",
}

// branchMnemonics maps comparison operator tokens to conditional jumps.
var branchMnemonics = map[TokenType]string{
	GREATER:    "jumpgt",
	GREATER_EQ: "jumpge",
	LESS:       "jumplt",
	LESS_EQ:    "jumple",
}

// convertAny dispatches a node to its converter. The variant set is closed:
// any node kind outside it is an unsupported construct, reported by type.
func convertAny(node any, st genState) ([]Unit, genState, error) {
	switch n := node.(type) {
	case *Module:
		return convertModule(n, st)
	case *Assign:
		return convertAssign(n, st)
	case *BinOp:
		return convertBinOp(n, st)
	case *Compare:
		return convertCompare(n, st)
	case *If:
		return convertIf(n, st)
	case *While:
		return convertWhile(n, st)
	case *For:
		return convertFor(n, st)
	default:
		return nil, st, fmt.Errorf("%w: no conversion for %T", ErrUnsupported, node)
	}
}

// convertModule lowers each top-level statement in order and merges every
// statement's declarations into the running data table.
func convertModule(m *Module, st genState) ([]Unit, genState, error) {
	var units []Unit
	for _, stmt := range m.Body {
		sub, subState, err := convertAny(stmt, st)
		if err != nil {
			return nil, st, err
		}
		units = append(units, sub...)
		st.data.merge(subState.data)
	}
	return units, st, nil
}

// operandLoad renders the load for one leaf operand: "load" for a variable
// read, "lea" for an immediate. Anything else is a nested expression, which
// the single-pass lowering does not support.
func operandLoad(e Expr, reg int) (string, error) {
	switch v := e.(type) {
	case *Name:
		return fmt.Sprintf("load R%d,%s", reg, v.Ident), nil
	case *Constant:
		return fmt.Sprintf("lea R%d,%s", reg, v), nil
	default:
		return "", fmt.Errorf("%w: nested expression as operand (%s)", ErrUnsupported, e)
	}
}

// convertBinOp lowers one two-operand arithmetic expression. The result
// lands in the state's target register, allocating one if none is pinned;
// two further registers stage the operands. The caller reads the target
// register back from the returned state.
func convertBinOp(b *BinOp, st genState) ([]Unit, genState, error) {
	op, ok := arithMnemonics[b.Op]
	if !ok {
		return nil, st, fmt.Errorf("%w: arithmetic operator %s", ErrUnsupported, b.Op.Symbol())
	}
	if st.target == 0 {
		reg, err := st.takeRegister()
		if err != nil {
			return nil, st, err
		}
		st.target = reg
	}
	leftReg, err := st.takeRegister()
	if err != nil {
		return nil, st, err
	}
	rightReg, err := st.takeRegister()
	if err != nil {
		return nil, st, err
	}

	comment := b.String()
	var units []Unit

	left, err := operandLoad(b.Left, leftReg)
	if err != nil {
		return nil, st, err
	}
	units = append(units, Instr{Text: left, Comment: comment})

	right, err := operandLoad(b.Right, rightReg)
	if err != nil {
		return nil, st, err
	}
	units = append(units, Instr{Text: right, Comment: comment})

	units = append(units, Instr{
		Text:    fmt.Sprintf("%s R%d,R%d,R%d", op, st.target, leftReg, rightReg),
		Comment: comment,
	})
	return units, st, nil
}

// convertCompare lowers a single comparison into a cmp followed by a
// conditional jump to the active true label and an unconditional jump to the
// active done label. Falling through to false is always that second jump,
// never an omission.
func convertCompare(c *Compare, st genState) ([]Unit, genState, error) {
	if len(c.Ops) != 1 || len(c.Comparators) != 1 {
		return nil, st, fmt.Errorf("%w: chained comparisons unsupported (%s)", ErrUnsupported, c)
	}
	branch, ok := branchMnemonics[c.Ops[0]]
	if !ok {
		return nil, st, fmt.Errorf("%w: comparison operator %s", ErrUnsupported, c.Ops[0].Symbol())
	}
	leftReg, err := st.takeRegister()
	if err != nil {
		return nil, st, err
	}
	rightReg, err := st.takeRegister()
	if err != nil {
		return nil, st, err
	}

	var units []Unit
	left, err := operandLoad(c.Left, leftReg)
	if err != nil {
		return nil, st, err
	}
	units = append(units, Instr{Text: left})

	right, err := operandLoad(c.Comparators[0], rightReg)
	if err != nil {
		return nil, st, err
	}
	units = append(units, Instr{Text: right})

	units = append(units,
		Instr{Text: fmt.Sprintf("cmp R%d,R%d", leftReg, rightReg)},
		Instr{Text: fmt.Sprintf("%s %s", branch, st.trueLabel)},
		Instr{Text: fmt.Sprintf("jump %s", st.doneLabel)},
	)
	return units, st, nil
}

// convertAssign lowers "name [= name ...] = value".
//
// A constant value declares the variable at compile time on first sight (no
// instructions, the value goes straight into the data section); assigning a
// constant to an already declared name becomes a runtime immediate-load and
// store through R1. An arithmetic value is lowered first, then its target
// register is stored to every name, declaring absent names with initial
// value 0.
func convertAssign(a *Assign, st genState) ([]Unit, genState, error) {
	names := make([]string, len(a.Targets))
	for i, t := range a.Targets {
		n, ok := t.(*Name)
		if !ok {
			return nil, st, fmt.Errorf("%w: assignment target must be a name (%s)", ErrUnsupported, t)
		}
		names[i] = n.Ident
	}

	var units []Unit
	switch v := a.Value.(type) {
	case *Constant:
		if !v.IsInt {
			return nil, st, fmt.Errorf("%w: %s", ErrNonIntegerConstant, v.Text)
		}
		for _, name := range names {
			if st.data.has(name) {
				units = append(units,
					Instr{Text: fmt.Sprintf("lea R1,%d", v.Value), Comment: a.String()},
					Instr{Text: fmt.Sprintf("store R1,%s", name), Comment: a.String()},
				)
			} else {
				st.data.declare(name, v.Value)
			}
		}

	case *BinOp:
		sub, subState, err := convertBinOp(v, st)
		if err != nil {
			return nil, st, err
		}
		units = append(units, sub...)
		for _, name := range names {
			units = append(units, Instr{
				Text:    fmt.Sprintf("store R%d,%s", subState.target, name),
				Comment: a.String(),
			})
			st.data.declare(name, 0)
		}

	default:
		return nil, st, fmt.Errorf("%w: cannot assign from %T", ErrUnsupported, a.Value)
	}
	return units, st, nil
}

// convertIf lowers "if test: body". Labels are derived from the statement's
// own source line; the body runs under the statement's value-copied state so
// its declarations land in the shared table.
func convertIf(s *If, st genState) ([]Unit, genState, error) {
	st.trueLabel = fmt.Sprintf("true%d", s.Line)
	st.doneLabel = fmt.Sprintf("done%d", s.Line)

	units, _, err := convertAny(s.Test, st)
	if err != nil {
		return nil, st, err
	}
	units = append(units, PendingLabel{Name: st.trueLabel})
	for _, stmt := range s.Body {
		sub, _, err := convertAny(stmt, st)
		if err != nil {
			return nil, st, err
		}
		units = append(units, sub...)
	}
	units = append(units, PendingLabel{Name: st.doneLabel})
	return units, st, nil
}

// convertWhile lowers a pre-test loop:
//
//	loopN:  test
//	        jump<op> trueN
//	        jump doneN
//	trueN:  body
//	        jump loopN
//	doneN:  ...
//
// The body is lowered in a forked state so nothing taken inside leaks to
// sibling statements; the fork is returned so the caller can merge the
// loop's declarations.
func convertWhile(s *While, st genState) ([]Unit, genState, error) {
	fork := st.fork()
	fork.loopLabel = fmt.Sprintf("loop%d", s.Line)
	fork.trueLabel = fmt.Sprintf("true%d", s.Line)
	fork.doneLabel = fmt.Sprintf("done%d", s.Line)

	units := []Unit{PendingLabel{Name: fork.loopLabel}}
	test, _, err := convertAny(s.Test, fork)
	if err != nil {
		return nil, st, err
	}
	units = append(units, test...)
	units = append(units, PendingLabel{Name: fork.trueLabel})
	for _, stmt := range s.Body {
		sub, _, err := convertAny(stmt, fork)
		if err != nil {
			return nil, st, err
		}
		units = append(units, sub...)
	}
	units = append(units,
		Instr{Text: fmt.Sprintf("jump %s", fork.loopLabel)},
		PendingLabel{Name: fork.doneLabel},
	)
	return units, fork, nil
}

// convertFor has no code generation rule of its own: the statement is
// desugared into an init assignment plus a while loop and those are lowered
// as ordinary nodes.
func convertFor(s *For, st genState) ([]Unit, genState, error) {
	init, loop, err := rewriteFor(s)
	if err != nil {
		return nil, st, err
	}
	fork := st.fork()
	units, _, err := convertAny(init, fork)
	if err != nil {
		return nil, st, err
	}
	loopUnits, _, err := convertAny(loop, fork)
	if err != nil {
		return nil, st, err
	}
	return append(units, loopUnits...), fork, nil
}
