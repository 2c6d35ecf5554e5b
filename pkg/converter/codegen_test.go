package converter

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// row renders one expected output line: the 20-column label gutter followed
// by the instruction text.
func row(label, instr string) string {
	return fmt.Sprintf("%-20s%s", label, instr)
}

// stripComments cuts the comment column and its padding so expectations pin
// the label gutter and instruction text only.
func stripComments(asm string) []string {
	lines := strings.Split(asm, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

func checkConvert(t *testing.T, src string, want []string) {
	t.Helper()
	asm, err := Convert(src)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	got := stripComments(asm)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d. Assembly:\n%s", len(got), len(want), asm)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestConvertGolden(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "constant assignment declares only",
			src:  "a = 15\n",
			want: []string{
				row("", "trap R0,R0,R0"),
				"",
				"a data 15",
			},
		},
		{
			name: "reassignment keeps first initial value",
			src:  "a = 15\na = 19\n",
			want: []string{
				row("", "lea R1,19"),
				row("", "store R1,a"),
				row("", "trap R0,R0,R0"),
				"",
				"a data 15",
			},
		},
		{
			name: "trailing comment is ignored",
			src:  "a = 15  # set a to 15\n",
			want: []string{
				row("", "trap R0,R0,R0"),
				"",
				"a data 15",
			},
		},
		{
			name: "addition over names and constants",
			src: `a = 15
b = 21
c = a + b
d = a + c
e = a + 6
e = 5 + 3
`,
			want: []string{
				row("", "load R2,a"),
				row("", "load R3,b"),
				row("", "add R1,R2,R3"),
				row("", "store R1,c"),
				row("", "load R2,a"),
				row("", "load R3,c"),
				row("", "add R1,R2,R3"),
				row("", "store R1,d"),
				row("", "load R2,a"),
				row("", "lea R3,6"),
				row("", "add R1,R2,R3"),
				row("", "store R1,e"),
				row("", "lea R2,5"),
				row("", "lea R3,3"),
				row("", "add R1,R2,R3"),
				row("", "store R1,e"),
				row("", "trap R0,R0,R0"),
				"",
				"a data 15",
				"b data 21",
				"c data 0",
				"d data 0",
				"e data 0",
			},
		},
		{
			name: "four arithmetic operations",
			src: `a = 3
b = 4
c = b - 3
d = c * 5
e = d + 15
f = e / 5
g = 40 / 5
`,
			want: []string{
				row("", "load R2,b"),
				row("", "lea R3,3"),
				row("", "sub R1,R2,R3"),
				row("", "store R1,c"),
				row("", "load R2,c"),
				row("", "lea R3,5"),
				row("", "mul R1,R2,R3"),
				row("", "store R1,d"),
				row("", "load R2,d"),
				row("", "lea R3,15"),
				row("", "add R1,R2,R3"),
				row("", "store R1,e"),
				row("", "load R2,e"),
				row("", "lea R3,5"),
				row("", "div R1,R2,R3"),
				row("", "store R1,f"),
				row("", "lea R2,40"),
				row("", "lea R3,5"),
				row("", "div R1,R2,R3"),
				row("", "store R1,g"),
				row("", "trap R0,R0,R0"),
				"",
				"a data 3",
				"b data 4",
				"c data 0",
				"d data 0",
				"e data 0",
				"f data 0",
				"g data 0",
			},
		},
		{
			name: "if statement",
			src:  "a = 4\nif a > 2:\n    a = 7\n",
			want: []string{
				row("", "load R1,a"),
				row("", "lea R2,2"),
				row("", "cmp R1,R2"),
				row("", "jumpgt true2"),
				row("", "jump done2"),
				row("true2", "lea R1,7"),
				row("", "store R1,a"),
				row("done2", "trap R0,R0,R0"),
				"",
				"a data 4",
			},
		},
		{
			name: "if statement with inline body",
			src:  "a = 4\nif a > 2: a = 7\n",
			want: []string{
				row("", "load R1,a"),
				row("", "lea R2,2"),
				row("", "cmp R1,R2"),
				row("", "jumpgt true2"),
				row("", "jump done2"),
				row("true2", "lea R1,7"),
				row("", "store R1,a"),
				row("done2", "trap R0,R0,R0"),
				"",
				"a data 4",
			},
		},
		{
			name: "while loop",
			src: `i = 3
v = 5
while i < 8:
    i = i + 1
    v = v + i
`,
			want: []string{
				row("loop3", "load R1,i"),
				row("", "lea R2,8"),
				row("", "cmp R1,R2"),
				row("", "jumplt true3"),
				row("", "jump done3"),
				row("true3", "load R2,i"),
				row("", "lea R3,1"),
				row("", "add R1,R2,R3"),
				row("", "store R1,i"),
				row("", "load R2,v"),
				row("", "load R3,i"),
				row("", "add R1,R2,R3"),
				row("", "store R1,v"),
				row("", "jump loop3"),
				row("done3", "trap R0,R0,R0"),
				"",
				"i data 3",
				"v data 5",
			},
		},
		{
			name: "for range loop",
			src: `v = 3
for i in range(5, 20):
    v = v + i
`,
			want: []string{
				row("loop2", "load R1,i"),
				row("", "lea R2,20"),
				row("", "cmp R1,R2"),
				row("", "jumplt true2"),
				row("", "jump done2"),
				row("true2", "load R2,v"),
				row("", "load R3,i"),
				row("", "add R1,R2,R3"),
				row("", "store R1,v"),
				row("", "load R2,i"),
				row("", "lea R3,1"),
				row("", "add R1,R2,R3"),
				row("", "store R1,i"),
				row("", "jump loop2"),
				row("done2", "trap R0,R0,R0"),
				"",
				"v data 3",
				"i data 5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkConvert(t, tt.src, tt.want)
		})
	}
}

// Every operator over every name/constant operand pairing emits exactly
// load-or-lea left, load-or-lea right, then the operation, left strictly
// before right.
func TestOperatorOperandMatrix(t *testing.T) {
	ops := []struct {
		symbol   string
		mnemonic string
	}{
		{"+", "add"},
		{"-", "sub"},
		{"*", "mul"},
		{"/", "div"},
	}
	operands := []struct {
		name      string
		left      string
		right     string
		loadLeft  string
		loadRight string
	}{
		{"name name", "a", "b", "load R2,a", "load R3,b"},
		{"name const", "a", "7", "load R2,a", "lea R3,7"},
		{"const name", "7", "b", "lea R2,7", "load R3,b"},
		{"const const", "7", "9", "lea R2,7", "lea R3,9"},
	}

	for _, op := range ops {
		for _, o := range operands {
			t.Run(op.mnemonic+" "+o.name, func(t *testing.T) {
				src := fmt.Sprintf("a = 1\nb = 2\nx = %s %s %s\n", o.left, op.symbol, o.right)
				checkConvert(t, src, []string{
					row("", o.loadLeft),
					row("", o.loadRight),
					row("", fmt.Sprintf("%s R1,R2,R3", op.mnemonic)),
					row("", "store R1,x"),
					row("", "trap R0,R0,R0"),
					"",
					"a data 1",
					"b data 2",
					"x data 0",
				})
			})
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	src := `total = 0
i = 0
while i < 10:
    total = total + i
    i = i + 1
if total > 20:
    total = 20
`
	first, err := Convert(src)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	second, err := Convert(src)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if first != second {
		t.Errorf("identical source produced different assembly:\n%s\n---\n%s", first, second)
	}
}

// A for loop must compile byte-identically to its hand-expanded
// assign+while form, label numbers included: the comment line keeps the for
// statement on the same source line as the hand-written while.
func TestForMatchesHandExpandedWhile(t *testing.T) {
	forSrc := `v = 3
# counter loop
for i in range(5, 20):
    v = v + i
`
	whileSrc := `v = 3
i = 5
while i < 20:
    v = v + i
    i = i + 1
`
	fromFor, err := Convert(forSrc)
	if err != nil {
		t.Fatalf("Convert(for) failed: %v", err)
	}
	fromWhile, err := Convert(whileSrc)
	if err != nil {
		t.Fatalf("Convert(while) failed: %v", err)
	}
	if fromFor != fromWhile {
		t.Errorf("for loop and hand-expanded while differ:\n%s\n---\n%s", fromFor, fromWhile)
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"chained comparison", "a = 1\nb = 2\nc = 3\nif a < b < c:\n    a = 5\n"},
		{"non-range for iterator", "for x in some_list:\n    a = 1\n"},
		{"range with one argument", "for i in range(5):\n    a = 1\n"},
		{"range with three arguments", "for i in range(1, 9, 2):\n    a = 1\n"},
		{"non-literal range bound", "n = 9\nfor i in range(1, n):\n    a = 1\n"},
		{"nested expression as operand", "a = 1\nb = a + 2 + 3\n"},
		{"parenthesized nested operand", "a = 1\nb = (a + 2) * 3\n"},
		{"tuple assignment target", "a, b = 5\n"},
		{"assignment from comparison", "a = 1\nb = a < 3\n"},
		{"assignment from call", "a = foo(1)\n"},
		{"bare name as condition", "a = 1\nif a:\n    a = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.src)
			if err == nil {
				t.Fatal("Convert succeeded, want unsupported construct error")
			}
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("got %v, want ErrUnsupported", err)
			}
		})
	}
}

func TestNonIntegerConstant(t *testing.T) {
	for _, src := range []string{"a = 1.5\n", "a = 'hello'\n"} {
		if _, err := Convert(src); !errors.Is(err, ErrNonIntegerConstant) {
			t.Errorf("Convert(%q): got %v, want ErrNonIntegerConstant", src, err)
		}
	}
}

// Two control constructs closing on adjacent labels leave only the later
// label attached: the inner done label is silently replaced, so its jump
// dangles. This pins the known behavior rather than fixing it.
func TestAdjacentDoneLabelsCollapse(t *testing.T) {
	src := `a = 4
if a > 1:
    if a > 2:
        a = 7
`
	asm, err := Convert(src)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(asm, "jump done3") {
		t.Errorf("inner conditional should still jump to done3:\n%s", asm)
	}
	for _, line := range strings.Split(asm, "\n") {
		if strings.HasPrefix(line, "done3") {
			t.Errorf("done3 label should have been replaced by done2: %q", line)
		}
	}
	got := stripComments(asm)
	haltRow := row("done2", "trap R0,R0,R0")
	found := false
	for _, line := range got {
		if line == haltRow {
			found = true
		}
	}
	if !found {
		t.Errorf("outer done2 label should attach to the trap:\n%s", asm)
	}
}
