package converter

// Registers R1..R14 form the allocatable pool; R0 is the hardwired zero
// register and is never handed out.
const (
	firstRegister = 1
	lastRegister  = 14
)

// DataEntry is one variable of the data section: its name and the initial
// value it holds when the program starts.
type DataEntry struct {
	Name  string
	Value int
}

// dataTable records each variable's compile-time initial value, in
// declaration order. A name is declared exactly once; the first declaration
// fixes the initial value for good.
type dataTable struct {
	names  []string
	values map[string]int
}

func newDataTable() *dataTable {
	return &dataTable{values: make(map[string]int)}
}

func (d *dataTable) has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// declare records name with the given initial value. Re-declaring an
// existing name is a no-op.
func (d *dataTable) declare(name string, value int) {
	if d.has(name) {
		return
	}
	d.names = append(d.names, name)
	d.values[name] = value
}

// clone returns an independent copy of the table.
func (d *dataTable) clone() *dataTable {
	c := newDataTable()
	c.names = append(c.names, d.names...)
	for name, value := range d.values {
		c.values[name] = value
	}
	return c
}

// merge appends other's entries that d does not already hold. Existing
// entries keep their first-declared value.
func (d *dataTable) merge(other *dataTable) {
	if other == nil || other == d {
		return
	}
	for _, name := range other.names {
		d.declare(name, other.values[name])
	}
}

// entries returns the table content in declaration order.
func (d *dataTable) entries() []DataEntry {
	out := make([]DataEntry, len(d.names))
	for i, name := range d.names {
		out[i] = DataEntry{Name: name, Value: d.values[name]}
	}
	return out
}

// genState threads register and label allocation through the lowering
// recursion. It is deliberately passed *by value*: an ordinary call hands a
// sub-lowering a shared-by-value continuation (the lock array copies, the
// data table pointer is shared), so sibling operand lowerings within one
// statement cannot collide on registers while locks taken deeper never leak
// back. fork additionally clones the data table and is taken exactly at
// while/for scope entry.
type genState struct {
	data   *dataTable
	locked [lastRegister + 1]bool // indexed by register number; slot 0 unused

	// target pins the register an expression result must land in; 0 when
	// unset (R0 is never allocatable, so 0 is free to mean "none").
	target int

	// Active control-flow labels. A conditional jumps to trueLabel when the
	// test holds and falls through to a jump to doneLabel otherwise; there
	// is no false label. loopLabel is the re-test point of the enclosing
	// while loop.
	trueLabel string
	doneLabel string
	loopLabel string
}

func newGenState() genState {
	return genState{data: newDataTable()}
}

// fork returns an independent copy for entering a loop body scope, so that
// declarations and locks taken inside do not alias the caller's table.
func (st genState) fork() genState {
	st.data = st.data.clone()
	return st
}

// takeRegister locks and returns the lowest register that is neither locked
// nor pinned as the current target. Locks are never released within a scope;
// a fresh scope starts from a fresh copy of the lock array instead.
func (st *genState) takeRegister() (int, error) {
	for r := firstRegister; r <= lastRegister; r++ {
		if st.locked[r] || r == st.target {
			continue
		}
		st.locked[r] = true
		return r, nil
	}
	return 0, ErrRegisterExhausted
}
