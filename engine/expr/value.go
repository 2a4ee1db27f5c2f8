// Package expr implements the typed postfix expression engine used by
// procedural shader parameters. Expressions are evaluated
// against a PropertyGroup and cache their last successful result in an
// EvalTable.
package expr

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ValueKind tags which field of Value is populated. Evaluation dispatches
// on pairs of ValueKind rather than using a virtual type hierarchy.
type ValueKind int

const (
	KindScalar ValueKind = iota
	KindVector2
	KindVector3
	KindMatrix3
	KindMatrix4
	KindColor
	KindQuaternion
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	case KindMatrix3:
		return "Matrix3"
	case KindMatrix4:
		return "Matrix4"
	case KindColor:
		return "Color"
	case KindQuaternion:
		return "Quaternion"
	default:
		return "Unknown"
	}
}

// Value is a typed expression result: a tagged union over the seven value
// kinds the expression engine and shader property groups understand.
type Value struct {
	Kind    ValueKind
	scalar  float32
	vector2 mgl32.Vec2
	vector3 mgl32.Vec3
	matrix3 mgl32.Mat3
	matrix4 mgl32.Mat4
	color   common.Color
	quat    mgl32.Quat
}

// Scalar builds a Value holding a scalar.
func Scalar(v float32) Value { return Value{Kind: KindScalar, scalar: v} }

// Vector2 builds a Value holding a 2-component vector.
func Vector2(v mgl32.Vec2) Value { return Value{Kind: KindVector2, vector2: v} }

// Vector3 builds a Value holding a 3-component vector.
func Vector3(v mgl32.Vec3) Value { return Value{Kind: KindVector3, vector3: v} }

// Matrix3 builds a Value holding a 3x3 matrix.
func Matrix3(v mgl32.Mat3) Value { return Value{Kind: KindMatrix3, matrix3: v} }

// Matrix4 builds a Value holding a 4x4 matrix.
func Matrix4(v mgl32.Mat4) Value { return Value{Kind: KindMatrix4, matrix4: v} }

// ColorValue builds a Value holding an RGBA color.
func ColorValue(v common.Color) Value { return Value{Kind: KindColor, color: v} }

// QuaternionValue builds a Value holding a quaternion.
func QuaternionValue(v mgl32.Quat) Value { return Value{Kind: KindQuaternion, quat: v} }

// AsScalar returns the scalar payload; only meaningful when Kind==KindScalar.
func (v Value) AsScalar() float32 { return v.scalar }

// AsVector2 returns the vector2 payload; only meaningful when Kind==KindVector2.
func (v Value) AsVector2() mgl32.Vec2 { return v.vector2 }

// AsVector3 returns the vector3 payload; only meaningful when Kind==KindVector3.
func (v Value) AsVector3() mgl32.Vec3 { return v.vector3 }

// AsMatrix3 returns the matrix3 payload; only meaningful when Kind==KindMatrix3.
func (v Value) AsMatrix3() mgl32.Mat3 { return v.matrix3 }

// AsMatrix4 returns the matrix4 payload; only meaningful when Kind==KindMatrix4.
func (v Value) AsMatrix4() mgl32.Mat4 { return v.matrix4 }

// AsColor returns the color payload; only meaningful when Kind==KindColor.
func (v Value) AsColor() common.Color { return v.color }

// AsQuaternion returns the quaternion payload; only meaningful when Kind==KindQuaternion.
func (v Value) AsQuaternion() mgl32.Quat { return v.quat }

// arity returns the total scalar component count for a value kind, used by
// constructor operators to validate that their popped components sum to
// the right total size for the requested output type.
func (k ValueKind) arity() int {
	switch k {
	case KindScalar:
		return 1
	case KindVector2:
		return 2
	case KindVector3:
		return 3
	case KindQuaternion:
		return 4
	case KindMatrix3:
		return 9
	case KindMatrix4:
		return 16
	case KindColor:
		return 4
	default:
		return 0
	}
}
