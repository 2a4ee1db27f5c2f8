package expr

import (
	"math"

	"github.com/Yinigma/Pibald/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Expression is a stable-id, postfix sequence of Terms. Evaluate walks the
// sequence left to right, pushing Operand values and popping/pushing for
// Operators.
type Expression struct {
	Id    uint16
	Terms []Term
}

// NewExpression builds an Expression from an id and a postfix term list.
func NewExpression(id uint16, terms ...Term) Expression {
	return Expression{Id: id, Terms: terms}
}

// Evaluate walks the postfix term list against props, pushing operand
// values and applying operators in the order they appear. Operators
// consume operands in reverse push order (the top of the stack is the
// rightmost pushed argument). On success the single remaining stack value
// is returned; any failure aborts immediately with no side effect on the
// caller (EvalTable.Update relies on this to leave stale entries intact).
//
// Parameters:
//   - props: the property group operand variables look up against
//
// Returns:
//   - Value: the expression's result
//   - error: the first evaluation failure encountered, if any
func (e Expression) Evaluate(props *PropertyGroup) (Value, error) {
	stack := make([]Value, 0, len(e.Terms))

	pop := func(op string) (Value, error) {
		if len(stack) == 0 {
			return Value{}, &ValueUnderflowError{Op: op}
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for _, term := range e.Terms {
		switch term.Kind {
		case TermKindOperand:
			v, err := resolveOperand(term.Operand, props)
			if err != nil {
				return Value{}, err
			}
			stack = append(stack, v)
		case TermKindOperator:
			result, err := applyOperator(term, &stack, pop)
			if err != nil {
				return Value{}, err
			}
			stack = append(stack, result)
		}
	}

	if len(stack) != 1 {
		return Value{}, &ValueUnderflowError{Op: "evaluate"}
	}
	return stack[0], nil
}

func resolveOperand(o Operand, props *PropertyGroup) (Value, error) {
	if !o.IsVariable {
		return o.Literal, nil
	}
	v, ok := props.Get(o.Name)
	if !ok {
		return Value{}, &InvalidIdentifierError{Name: o.Name}
	}
	return v, nil
}

// applyOperator consumes the right number of operands for term.Operator
// from stack (via pop) and returns the result to be pushed.
func applyOperator(term Term, stack *[]Value, pop func(string) (Value, error)) (Value, error) {
	opName := operatorName(term.Operator)

	switch term.Operator {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpExp:
		rhs, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		lhs, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		return evalArithmetic(term.Operator, lhs, rhs)

	case OpNeg, OpSin, OpCos, OpTan, OpLog, OpNormalize, OpInverse, OpTranspose:
		v, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		return evalUnary(term.Operator, v)

	case OpDot, OpCross:
		rhs, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		lhs, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		return evalVectorOp(term.Operator, lhs, rhs)

	case OpConstructVector2, OpConstructVector3, OpConstructColor, OpConstructMatrix3, OpConstructMatrix4, OpConstructQuaternion:
		return evalConstructor(term.Operator, pop)

	case OpRow, OpColumn:
		v, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		if len(term.Args) != 1 {
			return Value{}, &InvalidExpressionError{Desc: "Row/Column requires one index argument"}
		}
		return evalRowColumn(term.Operator, v, term.Args[0])

	case OpEntry:
		v, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		if len(term.Args) != 2 {
			return Value{}, &InvalidExpressionError{Desc: "Entry requires two index arguments"}
		}
		return evalEntry(v, term.Args[0], term.Args[1])

	case OpSwizzle2, OpSwizzle3, OpSwizzle4:
		v, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		return evalSwizzle(term.Operator, v, term.Args)

	default:
		return Value{}, &TypeMismatchError{Op: opName}
	}
}

func operatorName(op Operator) string {
	names := map[Operator]string{
		OpAdd: "Add", OpSub: "Sub", OpMul: "Mul", OpDiv: "Div", OpMod: "Mod", OpExp: "Exp",
		OpNeg: "Neg", OpSin: "Sin", OpCos: "Cos", OpTan: "Tan", OpLog: "Log",
		OpNormalize: "Normalize", OpInverse: "Inverse", OpTranspose: "Transpose",
		OpDot: "Dot", OpCross: "Cross",
		OpConstructVector2: "Vector2", OpConstructVector3: "Vector3", OpConstructColor: "Color",
		OpConstructMatrix3: "Matrix3", OpConstructMatrix4: "Matrix4", OpConstructQuaternion: "Quaternion",
		OpRow: "Row", OpColumn: "Column", OpEntry: "Entry",
		OpSwizzle2: "Swizzle2", OpSwizzle3: "Swizzle3", OpSwizzle4: "Swizzle4",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return "Unknown"
}

// --- Arithmetic ---

func evalArithmetic(op Operator, lhs, rhs Value) (Value, error) {
	opName := operatorName(op)

	// Scalar-scalar.
	if lhs.Kind == KindScalar && rhs.Kind == KindScalar {
		a, b := lhs.AsScalar(), rhs.AsScalar()
		switch op {
		case OpAdd:
			return Scalar(a + b), nil
		case OpSub:
			return Scalar(a - b), nil
		case OpMul:
			return Scalar(a * b), nil
		case OpDiv:
			if b == 0 {
				return Value{}, &DivideByZeroError{}
			}
			return Scalar(a / b), nil
		case OpMod:
			if b == 0 {
				return Value{}, &DivideByZeroError{}
			}
			return Scalar(float32(math.Mod(float64(a), float64(b)))), nil
		case OpExp:
			return Scalar(float32(math.Pow(float64(a), float64(b)))), nil
		}
	}

	// Vector3 +/- Vector3, Vector3 * / scalar.
	if lhs.Kind == KindVector3 && rhs.Kind == KindVector3 && (op == OpAdd || op == OpSub) {
		a, b := lhs.AsVector3(), rhs.AsVector3()
		if op == OpAdd {
			return Vector3(a.Add(b)), nil
		}
		return Vector3(a.Sub(b)), nil
	}
	if lhs.Kind == KindVector3 && rhs.Kind == KindScalar {
		a, s := lhs.AsVector3(), rhs.AsScalar()
		switch op {
		case OpMul:
			return Vector3(a.Mul(s)), nil
		case OpDiv:
			if s == 0 {
				return Value{}, &DivideByZeroError{}
			}
			return Vector3(a.Mul(1 / s)), nil
		}
	}
	if lhs.Kind == KindScalar && rhs.Kind == KindVector3 && op == OpMul {
		return Vector3(rhs.AsVector3().Mul(lhs.AsScalar())), nil
	}

	// Vector2 analogs.
	if lhs.Kind == KindVector2 && rhs.Kind == KindVector2 && (op == OpAdd || op == OpSub) {
		a, b := lhs.AsVector2(), rhs.AsVector2()
		if op == OpAdd {
			return Vector2(a.Add(b)), nil
		}
		return Vector2(a.Sub(b)), nil
	}
	if lhs.Kind == KindVector2 && rhs.Kind == KindScalar && op == OpMul {
		return Vector2(lhs.AsVector2().Mul(rhs.AsScalar())), nil
	}

	// Color +/- Color, Color * scalar.
	if lhs.Kind == KindColor && rhs.Kind == KindColor && (op == OpAdd || op == OpSub) {
		a, b := lhs.AsColor(), rhs.AsColor()
		if op == OpAdd {
			return ColorValue(common.NewColor(a.R+b.R, a.G+b.G, a.B+b.B, a.A+b.A)), nil
		}
		return ColorValue(common.NewColor(a.R-b.R, a.G-b.G, a.B-b.B, a.A-b.A)), nil
	}
	if lhs.Kind == KindColor && rhs.Kind == KindScalar && op == OpMul {
		a, s := lhs.AsColor(), rhs.AsScalar()
		return ColorValue(common.NewColor(a.R*s, a.G*s, a.B*s, a.A*s)), nil
	}

	// Matrix4 * Vector3: treat rhs as a point, apply the full 4x4 transform
	// (w=1), returning the dehomogenized Vector3.
	if lhs.Kind == KindMatrix4 && rhs.Kind == KindVector3 && op == OpMul {
		m := lhs.AsMatrix4()
		p := rhs.AsVector3()
		v4 := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
		if v4[3] != 0 && v4[3] != 1 {
			return Vector3(mgl32.Vec3{v4[0] / v4[3], v4[1] / v4[3], v4[2] / v4[3]}), nil
		}
		return Vector3(mgl32.Vec3{v4[0], v4[1], v4[2]}), nil
	}

	// Matrix4 * Matrix4.
	if lhs.Kind == KindMatrix4 && rhs.Kind == KindMatrix4 && op == OpMul {
		return Matrix4(lhs.AsMatrix4().Mul4(rhs.AsMatrix4())), nil
	}

	// Matrix3 * Vector3 / Matrix3.
	if lhs.Kind == KindMatrix3 && rhs.Kind == KindVector3 && op == OpMul {
		return Vector3(lhs.AsMatrix3().Mul3x1(rhs.AsVector3())), nil
	}
	if lhs.Kind == KindMatrix3 && rhs.Kind == KindMatrix3 && op == OpMul {
		return Matrix3(lhs.AsMatrix3().Mul3(rhs.AsMatrix3())), nil
	}

	// Quaternion * Quaternion (composition), Quaternion * scalar, Quaternion * Vector3 (rotate point).
	if lhs.Kind == KindQuaternion && rhs.Kind == KindQuaternion && op == OpMul {
		return QuaternionValue(lhs.AsQuaternion().Mul(rhs.AsQuaternion())), nil
	}
	if lhs.Kind == KindQuaternion && rhs.Kind == KindScalar && op == OpMul {
		q := lhs.AsQuaternion()
		return QuaternionValue(mgl32.Quat{W: q.W * rhs.AsScalar(), V: q.V.Mul(rhs.AsScalar())}), nil
	}
	if lhs.Kind == KindQuaternion && rhs.Kind == KindVector3 && op == OpMul {
		return Vector3(lhs.AsQuaternion().Rotate(rhs.AsVector3())), nil
	}

	return Value{}, &TypeMismatchError{Op: opName}
}

// --- Unary ---

func evalUnary(op Operator, v Value) (Value, error) {
	opName := operatorName(op)
	switch op {
	case OpNeg:
		switch v.Kind {
		case KindScalar:
			return Scalar(-v.AsScalar()), nil
		case KindVector2:
			return Vector2(v.AsVector2().Mul(-1)), nil
		case KindVector3:
			return Vector3(v.AsVector3().Mul(-1)), nil
		case KindColor:
			c := v.AsColor()
			return ColorValue(common.NewColor(-c.R, -c.G, -c.B, -c.A)), nil
		case KindQuaternion:
			q := v.AsQuaternion()
			return QuaternionValue(mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}), nil
		}
	case OpSin:
		if v.Kind == KindScalar {
			return Scalar(float32(math.Sin(float64(v.AsScalar())))), nil
		}
	case OpCos:
		if v.Kind == KindScalar {
			return Scalar(float32(math.Cos(float64(v.AsScalar())))), nil
		}
	case OpTan:
		if v.Kind == KindScalar {
			return Scalar(float32(math.Tan(float64(v.AsScalar())))), nil
		}
	case OpLog:
		if v.Kind == KindScalar {
			return Scalar(float32(math.Log(float64(v.AsScalar())))), nil
		}
	case OpNormalize:
		switch v.Kind {
		case KindVector2:
			return Vector2(v.AsVector2().Normalize()), nil
		case KindVector3:
			return Vector3(v.AsVector3().Normalize()), nil
		case KindQuaternion:
			return QuaternionValue(v.AsQuaternion().Normalize()), nil
		}
	case OpInverse:
		switch v.Kind {
		case KindMatrix3:
			m := v.AsMatrix3()
			if m.Det() == 0 {
				return Value{}, &DegenerateMatrixError{}
			}
			return Matrix3(m.Inv()), nil
		case KindMatrix4:
			m := v.AsMatrix4()
			if m.Det() == 0 {
				return Value{}, &DegenerateMatrixError{}
			}
			return Matrix4(m.Inv()), nil
		}
	case OpTranspose:
		switch v.Kind {
		case KindMatrix3:
			return Matrix3(v.AsMatrix3().Transpose()), nil
		case KindMatrix4:
			return Matrix4(v.AsMatrix4().Transpose()), nil
		}
	}
	return Value{}, &TypeMismatchError{Op: opName}
}

// --- Dot / Cross ---

func evalVectorOp(op Operator, lhs, rhs Value) (Value, error) {
	opName := operatorName(op)
	if lhs.Kind != rhs.Kind {
		return Value{}, &TypeMismatchError{Op: opName}
	}
	switch op {
	case OpDot:
		switch lhs.Kind {
		case KindVector2:
			return Scalar(lhs.AsVector2().Dot(rhs.AsVector2())), nil
		case KindVector3:
			return Scalar(lhs.AsVector3().Dot(rhs.AsVector3())), nil
		}
	case OpCross:
		if lhs.Kind == KindVector3 {
			return Vector3(lhs.AsVector3().Cross(rhs.AsVector3())), nil
		}
	}
	return Value{}, &TypeMismatchError{Op: opName}
}

// --- Constructors ---

// evalConstructor pops components in reverse index order (rightmost
// pushed component first) and assembles them in natural order: component 0
// is the last value popped.
func evalConstructor(op Operator, pop func(string) (Value, error)) (Value, error) {
	opName := operatorName(op)
	var targetKind ValueKind
	switch op {
	case OpConstructVector2:
		targetKind = KindVector2
	case OpConstructVector3:
		targetKind = KindVector3
	case OpConstructColor:
		targetKind = KindColor
	case OpConstructQuaternion:
		targetKind = KindQuaternion
	case OpConstructMatrix3:
		targetKind = KindMatrix3
	case OpConstructMatrix4:
		targetKind = KindMatrix4
	}
	want := targetKind.arity()

	comps := make([]float32, 0, want)
	for len(comps) < want {
		v, err := pop(opName)
		if err != nil {
			return Value{}, err
		}
		part, ok := componentsOf(v)
		if !ok {
			return Value{}, &TypeMismatchError{Op: opName}
		}
		// Components are popped in reverse order; prepend so the final
		// slice reads in natural (forward) component order.
		comps = append(part, comps...)
	}
	if len(comps) != want {
		return Value{}, &InvalidOutputSizeError{Op: opName, Size: len(comps)}
	}

	switch targetKind {
	case KindVector2:
		return Vector2(mgl32.Vec2{comps[0], comps[1]}), nil
	case KindVector3:
		return Vector3(mgl32.Vec3{comps[0], comps[1], comps[2]}), nil
	case KindColor:
		return ColorValue(common.NewColor(comps[0], comps[1], comps[2], comps[3])), nil
	case KindQuaternion:
		return QuaternionValue(mgl32.Quat{W: comps[3], V: mgl32.Vec3{comps[0], comps[1], comps[2]}}), nil
	case KindMatrix3:
		var m mgl32.Mat3
		copy(m[:], comps)
		return Matrix3(m), nil
	case KindMatrix4:
		var m mgl32.Mat4
		copy(m[:], comps)
		return Matrix4(m), nil
	}
	return Value{}, &TypeMismatchError{Op: opName}
}

// componentsOf extracts a value's scalar components for use as constructor
// inputs. A bare scalar contributes one component; composites contribute
// their full arity.
func componentsOf(v Value) ([]float32, bool) {
	switch v.Kind {
	case KindScalar:
		return []float32{v.AsScalar()}, true
	case KindVector2:
		c := v.AsVector2()
		return []float32{c[0], c[1]}, true
	case KindVector3:
		c := v.AsVector3()
		return []float32{c[0], c[1], c[2]}, true
	case KindColor:
		c := v.AsColor()
		return []float32{c.R, c.G, c.B, c.A}, true
	case KindQuaternion:
		q := v.AsQuaternion()
		return []float32{q.V[0], q.V[1], q.V[2], q.W}, true
	case KindMatrix3:
		m := v.AsMatrix3()
		return append([]float32{}, m[:]...), true
	case KindMatrix4:
		m := v.AsMatrix4()
		return append([]float32{}, m[:]...), true
	}
	return nil, false
}

// --- Row / Column / Entry ---

func evalRowColumn(op Operator, v Value, index int) (Value, error) {
	opName := operatorName(op)
	switch v.Kind {
	case KindMatrix3:
		m := v.AsMatrix3()
		if index < 0 || index >= 3 {
			return Value{}, &IndexOutOfBoundsError{Op: opName, Index: index}
		}
		if op == OpRow {
			return Vector3(m.Row(index)), nil
		}
		return Vector3(m.Col(index)), nil
	case KindMatrix4:
		m := v.AsMatrix4()
		if index < 0 || index >= 4 {
			return Value{}, &IndexOutOfBoundsError{Op: opName, Index: index}
		}
		var r mgl32.Vec4
		if op == OpRow {
			r = m.Row(index)
		} else {
			r = m.Col(index)
		}
		return QuaternionValue(mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}), nil
	}
	return Value{}, &TypeMismatchError{Op: opName}
}

func evalEntry(v Value, row, col int) (Value, error) {
	switch v.Kind {
	case KindMatrix3:
		if row < 0 || row >= 3 || col < 0 || col >= 3 {
			return Value{}, &IndexOutOfBoundsError{Op: "Entry", Index: row*3 + col}
		}
		m := v.AsMatrix3()
		return Scalar(m.At(row, col)), nil
	case KindMatrix4:
		if row < 0 || row >= 4 || col < 0 || col >= 4 {
			return Value{}, &IndexOutOfBoundsError{Op: "Entry", Index: row*4 + col}
		}
		m := v.AsMatrix4()
		return Scalar(m.At(row, col)), nil
	}
	return Value{}, &TypeMismatchError{Op: "Entry"}
}

// --- Swizzle ---

func evalSwizzle(op Operator, v Value, indices []int) (Value, error) {
	opName := operatorName(op)
	comps, ok := componentsOf(v)
	if !ok {
		return Value{}, &TypeMismatchError{Op: opName}
	}
	out := make([]float32, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(comps) {
			return Value{}, &IndexOutOfBoundsError{Op: opName, Index: idx}
		}
		out[i] = comps[idx]
	}
	switch op {
	case OpSwizzle2:
		if len(out) != 2 {
			return Value{}, &InvalidOutputSizeError{Op: opName, Size: len(out)}
		}
		return Vector2(mgl32.Vec2{out[0], out[1]}), nil
	case OpSwizzle3:
		if len(out) != 3 {
			return Value{}, &InvalidOutputSizeError{Op: opName, Size: len(out)}
		}
		return Vector3(mgl32.Vec3{out[0], out[1], out[2]}), nil
	case OpSwizzle4:
		if len(out) != 4 {
			return Value{}, &InvalidOutputSizeError{Op: opName, Size: len(out)}
		}
		return QuaternionValue(mgl32.Quat{W: out[3], V: mgl32.Vec3{out[0], out[1], out[2]}}), nil
	}
	return Value{}, &TypeMismatchError{Op: opName}
}
