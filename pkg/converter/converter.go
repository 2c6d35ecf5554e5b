// Package converter lowers a small Python subset (integer variable
// assignment, four-operator arithmetic, single comparisons, if, while, and
// two-argument range for loops) into Sigma16 assembly text with a separate
// initialized-data section.
//
// The pipeline is Lex, Parse, lower, linearize.
package converter

// Convert compiles src and returns the generated assembly text. It fails on
// the first problem found with an error wrapping one of ErrSyntax,
// ErrUnsupported, ErrNonIntegerConstant or ErrRegisterExhausted; no partial
// output is produced. Compiling the same source twice yields byte-identical
// text.
func Convert(src string) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}
	mod, err := Parse(tokens, src)
	if err != nil {
		return "", err
	}
	return Generate(mod)
}

// Generate lowers a parsed module and returns the final assembly text:
// instruction lines with resolved labels, the trap terminator, a blank
// separator, and the data section.
func Generate(mod *Module) (string, error) {
	units, st, err := convertAny(mod, newGenState())
	if err != nil {
		return "", err
	}
	return assemble(units, st.data), nil
}
