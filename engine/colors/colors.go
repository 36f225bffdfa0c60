package colors

// Color is an RGB triple in [0,1], matching the UI vertex color layout.
type Color [3]float32

var (
	White    = Color{1, 1, 1}
	Red      = Color{1, 0, 0}
	Green    = Color{0, 1, 0}
	Blue     = Color{0, 0, 1}
	Black    = Color{0, 0, 0}
	Gray     = Color{0.5, 0.5, 0.5}
	DarkGray = Color{0.08, 0.10, 0.12}
)

// Scale multiplies each channel by f, clamped to [0,1].
func (c Color) Scale(f float32) Color {
	for i := range c {
		v := c[i] * f
		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		c[i] = v
	}
	return c
}
