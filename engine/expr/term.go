package expr

// Operator identifies an expression operation. Evaluation is a dispatch
// table keyed on Operator rather than a virtual method hierarchy.
type Operator int

const (
	// Arithmetic, dispatch on the pair of popped value kinds.
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp

	// Unary.
	OpNeg
	OpSin
	OpCos
	OpTan
	OpLog
	OpNormalize
	OpInverse
	OpTranspose

	// Vector ops.
	OpDot
	OpCross

	// Constructors — pop Kind.arity() scalar/composite components in
	// reverse index order, produce the value in natural component order.
	OpConstructVector2
	OpConstructVector3
	OpConstructColor
	OpConstructMatrix3
	OpConstructMatrix4
	OpConstructQuaternion

	// Indexing — Term.Args carries the index/indices.
	OpRow
	OpColumn
	OpEntry
	OpSwizzle2
	OpSwizzle3
	OpSwizzle4
)

// Operand is a postfix leaf: either a literal value or a named lookup
// against the PropertyGroup passed to Evaluate.
type Operand struct {
	IsVariable bool
	Literal    Value
	Name       string
}

// LiteralOperand builds an Operand wrapping a constant Value.
func LiteralOperand(v Value) Operand { return Operand{Literal: v} }

// VariableOperand builds an Operand that looks up name in the property
// group at evaluation time.
func VariableOperand(name string) Operand { return Operand{IsVariable: true, Name: name} }

// TermKind distinguishes the two Term shapes.
type TermKind int

const (
	TermKindOperand TermKind = iota
	TermKindOperator
)

// Term is one node of an Expression's postfix sequence.
type Term struct {
	Kind     TermKind
	Operand  Operand
	Operator Operator
	// Args carries operator-specific integer parameters: the single index
	// for Row/Column, the (row, col) pair for Entry, and the component
	// indices (length 2/3/4) for Swizzle2/Swizzle3/Swizzle4.
	Args []int
}

// OperandTerm builds a Term wrapping an Operand.
func OperandTerm(o Operand) Term { return Term{Kind: TermKindOperand, Operand: o} }

// OperatorTerm builds a Term wrapping an Operator with optional index args.
func OperatorTerm(op Operator, args ...int) Term {
	return Term{Kind: TermKindOperator, Operator: op, Args: args}
}
