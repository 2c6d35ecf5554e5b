package converter

import (
	"fmt"
	"strings"
)

// Output columns. Labels occupy a 20-column gutter, instructions pad to 40
// columns before their "; comment" annotation, so comments line up at column
// 60, the same column where the data section's annotations start.
const (
	labelWidth = 20
	instrWidth = 40
	dataWidth  = 60
)

// render formats the instruction text with its trailing comment, if any.
func (in Instr) render() string {
	if in.Comment == "" {
		return in.Text
	}
	return fmt.Sprintf("%-*s; %s", instrWidth, in.Text, in.Comment)
}

// assemble linearizes the emission stream into final assembly text.
//
// A single pending-label slot is resolved against the next instruction; a
// later pending label silently replaces an earlier unattached one. A trap
// terminator is appended so every program halts, followed by one blank line
// and the data section in declaration order.
func assemble(units []Unit, data *dataTable) string {
	units = append(units, Instr{Text: "trap R0,R0,R0", Comment: "stop program"})

	var lines []string
	label := ""
	for _, u := range units {
		switch v := u.(type) {
		case PendingLabel:
			label = v.Name
		case Instr:
			lines = append(lines, fmt.Sprintf("%-*s%s", labelWidth, label, v.render()))
			label = ""
		}
	}

	lines = append(lines, "")
	for _, e := range data.entries() {
		decl := fmt.Sprintf("%s data %d", e.Name, e.Value)
		lines = append(lines, fmt.Sprintf("%-*s; initial value", dataWidth, decl))
	}
	return strings.Join(lines, "\n")
}
