package geometry

// Transform is a 3×3 matrix in row-major order, used for output rotation.
// Only the rotations an output can report are constructed here; arbitrary
// affine math stays out of the core.
type Transform struct {
	m [3][3]float64
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{m: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Rotate90 returns a 90° counter-clockwise rotation.
func Rotate90() Transform {
	return Transform{m: [3][3]float64{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}}
}

// Rotate180 returns a 180° rotation.
func Rotate180() Transform {
	return Transform{m: [3][3]float64{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, 1},
	}}
}

// Rotate270 returns a 270° counter-clockwise rotation.
func Rotate270() Transform {
	return Transform{m: [3][3]float64{
		{0, 1, 0},
		{-1, 0, 0},
		{0, 0, 1},
	}}
}

// Apply maps the point (x, y) through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	nx := t.m[0][0]*x + t.m[0][1]*y + t.m[0][2]
	ny := t.m[1][0]*x + t.m[1][1]*y + t.m[1][2]
	return nx, ny
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
