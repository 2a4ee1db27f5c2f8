package common

// Color is a 4-component floating-point RGBA color.
type Color struct {
	R, G, B, A float32
}

// NewColor builds a Color from individual components.
//
// Parameters:
//   - r, g, b, a: color components, typically in [0,1]
//
// Returns:
//   - Color: the constructed color
func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Lerp linearly interpolates between c and other by t.
//
// Parameters:
//   - other: the target color
//   - t: interpolation factor, typically in [0,1]
//
// Returns:
//   - Color: the interpolated color
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}
