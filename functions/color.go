package functions

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// hsvSectors selects, per 60 degree sector, which of the candidate values
// v, v(1-s), v(1-fs) and v(1-(1-f)s) become red, green and blue.
var hsvSectors = [6][3]int{
	{0, 3, 1},
	{2, 0, 1},
	{1, 0, 3},
	{1, 2, 0},
	{3, 1, 0},
	{0, 1, 2},
}

// ParseHex parses #rgb or #rrggbb into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return NewColor(math.Round(c.R*255), math.Round(c.G*255), math.Round(c.B*255), 1), nil
}

// RGBToHSV converts channels in 0..255 to HSV with all components in [0,1].
func RGBToHSV(r, g, b float64) HSVColor {
	r, g, b = r/255, g/255, b/255
	hi, lo := math.Max(r, math.Max(g, b)), math.Min(r, math.Min(g, b))
	d := hi - lo

	var h, s float64
	if hi != 0 {
		s = d / hi
	}
	if hi != lo {
		h = hueFraction(r, g, b, hi, d)
	}

	return HSVColor{Hue: h, Saturation: s, Value: hi}
}

// ToHSL converts c to HSL. It is the inverse of HSLA.
func (c Color) ToHSL() HSLColor {
	r, g, b := c.RGB[0]/255, c.RGB[1]/255, c.RGB[2]/255
	hi, lo := math.Max(r, math.Max(g, b)), math.Min(r, math.Min(g, b))
	d := hi - lo
	l := (hi + lo) / 2

	var h, s float64
	if hi != lo {
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}
		h = hueFraction(r, g, b, hi, d)
	}

	return HSLColor{Hue: h * 360, Saturation: s, Lightness: l, Alpha: c.Alpha}
}

// hueFraction returns the hue in [0,1) for normalized channels with a
// non-zero chroma d.
func hueFraction(r, g, b, hi, d float64) float64 {
	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	return h / 6
}

// HSLA converts hue in degrees and s, l, a in [0,1] to a Color.
// Hues outside [0,360) wrap.
func HSLA(h, s, l, a float64) Color {
	h = math.Mod(h, 360) / 360

	var m2 float64
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	m1 := l*2 - m2

	hue := func(h float64) float64 {
		if h < 0 {
			h++
		} else if h > 1 {
			h--
		}
		switch {
		case h*6 < 1:
			return m1 + (m2-m1)*h*6
		case h*2 < 1:
			return m2
		case h*3 < 2:
			return m1 + (m2-m1)*(2.0/3-h)*6
		default:
			return m1
		}
	}

	return NewColor(hue(h+1.0/3)*255, hue(h)*255, hue(h-1.0/3)*255, a)
}

// HSVA converts hue in degrees and s, v, a in [0,1] to a Color.
// Hues outside [0,360) wrap, a NaN or infinite hue is taken as 0.
func HSVA(h, s, v, a float64) Color {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// A tiny negative hue rounds to 360 above.
	if h >= 360 {
		h -= 360
	}

	sector := math.Floor(h / 60)
	f := h/60 - sector
	i := int(sector) % 6

	vs := [4]float64{
		v,
		v * (1 - s),
		v * (1 - f*s),
		v * (1 - (1-f)*s),
	}
	perm := hsvSectors[i]

	return NewColor(vs[perm[0]]*255, vs[perm[1]]*255, vs[perm[2]]*255, a)
}

// Luma returns the relative luminance of c in [0,1], scaled by its alpha.
func Luma(c Color) float64 {
	return (0.2126*(c.RGB[0]/255) +
		0.7152*(c.RGB[1]/255) +
		0.0722*(c.RGB[2]/255)) * c.Alpha
}

// Mix blends c1 and c2 by weight (0..100, the share of c1), taking the
// difference in alpha into account.
func Mix(c1, c2 Color, weight float64) Color {
	p := weight / 100
	w := p*2 - 1
	a := c1.ToHSL().Alpha - c2.ToHSL().Alpha

	var w1 float64
	if w*a == -1 {
		w1 = (w + 1) / 2
	} else {
		w1 = ((w+a)/(1+w*a) + 1) / 2
	}
	w2 := 1 - w1

	var rgb [3]float64
	for i := range rgb {
		rgb[i] = c1.RGB[i]*w1 + c2.RGB[i]*w2
	}

	return Color{RGB: rgb, Alpha: c1.Alpha*p + c2.Alpha*(1-p)}
}

// GTKMix linearly interpolates from c1 to c2 by t in [0,1].
func GTKMix(c1, c2 Color, t float64) Color {
	var rgb [3]float64
	for i := range rgb {
		rgb[i] = c1.RGB[i] + (c2.RGB[i]-c1.RGB[i])*t
	}
	return Color{RGB: rgb, Alpha: c1.Alpha + (c2.Alpha-c1.Alpha)*t}
}

func clamp(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
