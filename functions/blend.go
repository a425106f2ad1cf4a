package functions

import "math"

// BlendMode combines one channel of two colors, both in 0..255.
type BlendMode func(c1, c2 float64) float64

// Blend applies mode to each RGB channel of c1 and c2. Alpha is ignored and
// the result is opaque.
func Blend(c1, c2 Color, mode BlendMode) Color {
	return NewColor(
		mode(c1.RGB[0], c2.RGB[0]),
		mode(c1.RGB[1], c2.RGB[1]),
		mode(c1.RGB[2], c2.RGB[2]),
		1,
	)
}

// The blend modes available as functions.
var (
	Multiply BlendMode = func(c1, c2 float64) float64 {
		return c1 * c2 / 255
	}

	Screen BlendMode = func(c1, c2 float64) float64 {
		return 255 - (255-c1)*(255-c2)/255
	}

	Overlay BlendMode = func(c1, c2 float64) float64 {
		if c1 < 128 {
			return 2 * c1 * c2 / 255
		}
		return 255 - 2*(255-c1)*(255-c2)/255
	}

	SoftLight BlendMode = func(c1, c2 float64) float64 {
		t := c2 * c1 / 255
		return t + c1*(255-(255-c1)*(255-c2)/255-t)/255
	}

	HardLight BlendMode = func(c1, c2 float64) float64 {
		if c2 < 128 {
			return 2 * c2 * c1 / 255
		}
		return 255 - 2*(255-c2)*(255-c1)/255
	}

	Difference BlendMode = func(c1, c2 float64) float64 {
		return math.Abs(c1 - c2)
	}

	Exclusion BlendMode = func(c1, c2 float64) float64 {
		return c1 + c2*(255-c1-c1)/255
	}

	Average BlendMode = func(c1, c2 float64) float64 {
		return (c1 + c2) / 2
	}

	Negation BlendMode = func(c1, c2 float64) float64 {
		return 255 - math.Abs(255-c2-c1)
	}
)
