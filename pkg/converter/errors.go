package converter

import "errors"

// The converter fails fast: the first error aborts the whole compile and no
// partial assembly is produced. Callers can classify failures with errors.Is.
var (
	// ErrSyntax reports source text that does not conform to the grammar.
	// Raised by the lexer and parser only.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupported reports a syntactically valid construct the lowering
	// engine has no rule for: chained comparisons, non-range for iterators,
	// nested expressions as operands, tuple assignment targets, and so on.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrNonIntegerConstant reports a constant assignment whose value is not
	// an integer.
	ErrNonIntegerConstant = errors.New("non-integer constant")

	// ErrRegisterExhausted reports that all general purpose registers are
	// locked within one lowering scope.
	ErrRegisterExhausted = errors.New("all registers are already in use")
)
