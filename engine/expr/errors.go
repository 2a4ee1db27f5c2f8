package expr

import "fmt"

// TypeMismatchError reports an operator or constructor applied to operand
// types that have no defined type law.
type TypeMismatchError struct {
	Op string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expr: type mismatch in operator %q", e.Op)
}

// ValueUnderflowError reports an operator that needed more operands than
// were present on the evaluation stack.
type ValueUnderflowError struct {
	Op string
}

func (e *ValueUnderflowError) Error() string {
	return fmt.Sprintf("expr: value stack underflow in operator %q", e.Op)
}

// DivideByZeroError reports a division or modulo whose right-hand operand
// has an exactly-zero component.
type DivideByZeroError struct{}

func (e *DivideByZeroError) Error() string {
	return "expr: divide by zero"
}

// DegenerateMatrixError reports a matrix inverse attempted on a matrix
// whose determinant is exactly zero.
type DegenerateMatrixError struct{}

func (e *DegenerateMatrixError) Error() string {
	return "expr: matrix has zero determinant, cannot invert"
}

// IndexOutOfBoundsError reports a Row/Column/Entry/Swizzle index that
// exceeds the dimension of its operand.
type IndexOutOfBoundsError struct {
	Op    string
	Index int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("expr: index %d out of bounds in operator %q", e.Index, e.Op)
}

// InvalidOutputSizeError reports a constructor whose component sources sum
// to the wrong total arity for the requested output type.
type InvalidOutputSizeError struct {
	Op   string
	Size int
}

func (e *InvalidOutputSizeError) Error() string {
	return fmt.Sprintf("expr: invalid output size %d for operator %q", e.Size, e.Op)
}

// InvalidIdentifierError reports an operand variable name that is absent
// from the property group supplied to Evaluate.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("expr: no such identifier %q", e.Name)
}

// InvalidExpressionError reports a Term whose Args do not match what its
// Operator requires (e.g. Row/Column with no index, Entry with one index).
// This indicates a malformed Expression rather than a bad runtime value.
type InvalidExpressionError struct {
	Desc string
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("expr: malformed expression: %s", e.Desc)
}

// Assignment errors (PropertyGroup.Set).

// NoSuchPropertyGroupError reports a lookup against a property group name
// that has not been registered.
type NoSuchPropertyGroupError struct {
	Name string
}

func (e *NoSuchPropertyGroupError) Error() string {
	return fmt.Sprintf("expr: no such property group %q", e.Name)
}

// NoSuchPropertyError reports a Set/Get against a property name absent
// from the group.
type NoSuchPropertyError struct {
	Name string
}

func (e *NoSuchPropertyError) Error() string {
	return fmt.Sprintf("expr: no such property %q", e.Name)
}

// PropertyTypeMismatchError reports an assignment whose value type does
// not match the property's existing (default) type.
type PropertyTypeMismatchError struct {
	Property     string
	ExpectedType ValueKind
	GivenType    ValueKind
}

func (e *PropertyTypeMismatchError) Error() string {
	return fmt.Sprintf("expr: property %q expects %s, got %s", e.Property, e.ExpectedType, e.GivenType)
}
