package expr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ScalarAddSuccess(t *testing.T) {
	e := NewExpression(1,
		OperandTerm(VariableOperand("rho")),
		OperandTerm(LiteralOperand(Scalar(25))),
		OperatorTerm(OpAdd),
	)
	props := NewPropertyGroup()
	require.NoError(t, props.Set("rho", Scalar(4)))

	result, err := e.Evaluate(props)
	require.NoError(t, err)
	assert.Equal(t, KindScalar, result.Kind)
	assert.Equal(t, float32(29), result.AsScalar())
}

func TestEvaluate_MissingIdentifierFails(t *testing.T) {
	e := NewExpression(1,
		OperandTerm(VariableOperand("rho")),
		OperandTerm(LiteralOperand(Scalar(25))),
		OperatorTerm(OpAdd),
	)
	props := NewPropertyGroup()

	_, err := e.Evaluate(props)
	require.Error(t, err)
	var idErr *InvalidIdentifierError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "rho", idErr.Name)
}

func TestEvalTable_UpdateLeavesStaleEntryOnFailure(t *testing.T) {
	e := NewExpression(7,
		OperandTerm(VariableOperand("rho")),
		OperandTerm(LiteralOperand(Scalar(25))),
		OperatorTerm(OpAdd),
	)
	table := NewEvalTable()
	props := NewPropertyGroup()
	require.NoError(t, props.Set("rho", Scalar(4)))

	require.NoError(t, table.Update(e, props))
	v, ok := table.Get(7)
	require.True(t, ok)
	assert.Equal(t, float32(29), v.AsScalar())

	empty := NewPropertyGroup()
	err := table.Update(e, empty)
	require.Error(t, err)

	stale, ok := table.Get(7)
	require.True(t, ok)
	assert.Equal(t, float32(29), stale.AsScalar())
}

func TestEvaluate_DivideByZero(t *testing.T) {
	e := NewExpression(2,
		OperandTerm(LiteralOperand(Scalar(1))),
		OperandTerm(LiteralOperand(Scalar(0))),
		OperatorTerm(OpDiv),
	)
	_, err := e.Evaluate(NewPropertyGroup())
	require.Error(t, err)
	var dbz *DivideByZeroError
	require.ErrorAs(t, err, &dbz)
}

func TestEvaluate_ConstructVector3ReverseIndexOrder(t *testing.T) {
	// Components are pushed in order x, y, z; the constructor must consume
	// them in reverse push order and re-assemble them in natural order.
	e := NewExpression(3,
		OperandTerm(LiteralOperand(Scalar(1))),
		OperandTerm(LiteralOperand(Scalar(2))),
		OperandTerm(LiteralOperand(Scalar(3))),
		OperatorTerm(OpConstructVector3),
	)
	result, err := e.Evaluate(NewPropertyGroup())
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, result.AsVector3())
}

func TestEvaluate_StackUnderflow(t *testing.T) {
	e := NewExpression(4,
		OperandTerm(LiteralOperand(Scalar(1))),
		OperatorTerm(OpAdd),
	)
	_, err := e.Evaluate(NewPropertyGroup())
	require.Error(t, err)
	var underflow *ValueUnderflowError
	require.ErrorAs(t, err, &underflow)
}

func TestEvaluate_MatrixInverseDegenerate(t *testing.T) {
	e := NewExpression(5,
		OperandTerm(LiteralOperand(Matrix3(mgl32.Mat3{}))),
		OperatorTerm(OpInverse),
	)
	_, err := e.Evaluate(NewPropertyGroup())
	require.Error(t, err)
	var degenerate *DegenerateMatrixError
	require.ErrorAs(t, err, &degenerate)
}

func TestEvaluate_MatrixVectorTransform(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	e := NewExpression(6,
		OperandTerm(LiteralOperand(Matrix4(m))),
		OperandTerm(LiteralOperand(Vector3(mgl32.Vec3{0, 0, 0}))),
		OperatorTerm(OpMul),
	)
	result, err := e.Evaluate(NewPropertyGroup())
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, result.AsVector3())
}

func TestPropertyGroup_SetRejectsTypeChange(t *testing.T) {
	g := NewPropertyGroup()
	require.NoError(t, g.Set("amount", Scalar(1)))
	err := g.Set("amount", Vector3(mgl32.Vec3{1, 2, 3}))
	require.Error(t, err)
	var mismatch *PropertyTypeMismatchError
	require.ErrorAs(t, err, &mismatch)

	v, _ := g.Get("amount")
	assert.Equal(t, float32(1), v.AsScalar())
}
