package functions

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
)

var approx = qt.CmpEquals(cmpopts.EquateApprox(0, 1e-9))

func TestHSLRoundTrip(t *testing.T) {
	c := qt.New(t)

	for r := 0.0; r <= 255; r += 15 {
		for g := 0.0; g <= 255; g += 15 {
			for b := 0.0; b <= 255; b += 15 {
				for _, a := range []float64{0, 0.5, 1} {
					color := NewColor(r, g, b, a)
					back := color.ToHSL().Color()
					c.Assert(back.RGB, approx, color.RGB, qt.Commentf("rgb(%v, %v, %v)", r, g, b))
					c.Assert(back.Alpha, qt.Equals, a)
				}
			}
		}
	}
}

func TestHSLAHueWrap(t *testing.T) {
	c := qt.New(t)

	for _, h := range []float64{0, 30, 90, 179.5, 200, 359} {
		base := HSLA(h, 0.7, 0.4, 1)
		c.Assert(HSLA(h+360, 0.7, 0.4, 1).RGB, approx, base.RGB, qt.Commentf("hue %v", h))
		c.Assert(HSLA(h-360, 0.7, 0.4, 1).RGB, approx, base.RGB, qt.Commentf("hue %v", h))
	}
}

func TestHSLAKnownColors(t *testing.T) {
	c := qt.New(t)

	for _, test := range []struct {
		h, s, l float64
		expect  string
	}{
		{0, 1, 0.5, "#ff0000"},
		{120, 1, 0.5, "#00ff00"},
		{240, 1, 0.5, "#0000ff"},
		{60, 1, 0.5, "#ffff00"},
		{0, 0, 1, "#ffffff"},
		{0, 0, 0, "#000000"},
		{0, 1, 0.4, "#cc0000"},
		{-120, 1, 0.5, "#0000ff"},
	} {
		c.Assert(HSLA(test.h, test.s, test.l, 1).CSS(), qt.Equals, test.expect)
	}
}

func TestHSLAgainstColorful(t *testing.T) {
	c := qt.New(t)

	for h := 0.0; h < 360; h += 7.5 {
		for _, s := range []float64{0, 0.25, 0.8, 1} {
			for _, l := range []float64{0.1, 0.5, 0.75} {
				got := HSLA(h, s, l, 1)
				want := colorful.Hsl(h, s, l)
				c.Assert(got.RGB, qt.CmpEquals(cmpopts.EquateApprox(0, 1e-6)),
					[3]float64{want.R * 255, want.G * 255, want.B * 255},
					qt.Commentf("hsl(%v, %v, %v)", h, s, l))
			}
		}
	}
}

func TestHSVAAgainstColorful(t *testing.T) {
	c := qt.New(t)

	for h := 0.0; h < 360; h += 5 {
		for _, s := range []float64{0, 0.3, 1} {
			for _, v := range []float64{0.2, 0.6, 1} {
				got := HSVA(h, s, v, 1)
				want := colorful.Hsv(h, s, v)
				c.Assert(got.RGB, qt.CmpEquals(cmpopts.EquateApprox(0, 1e-6)),
					[3]float64{want.R * 255, want.G * 255, want.B * 255},
					qt.Commentf("hsv(%v, %v, %v)", h, s, v))
			}
		}
	}
}

func TestHSVASectors(t *testing.T) {
	c := qt.New(t)

	for _, test := range []struct {
		h      float64
		expect string
	}{
		{0, "#ff0000"},
		{60, "#ffff00"},
		{120, "#00ff00"},
		{180, "#00ffff"},
		{240, "#0000ff"},
		{300, "#ff00ff"},
		{360, "#ff0000"},
		{-60, "#ff00ff"},
		{-1e-14, "#ff0000"},
		{math.Inf(1), "#ff0000"},
		{math.NaN(), "#ff0000"},
	} {
		c.Assert(HSVA(test.h, 1, 1, 1).CSS(), qt.Equals, test.expect, qt.Commentf("hue %v", test.h))
	}
}

func TestRGBToHSV(t *testing.T) {
	c := qt.New(t)

	c.Assert(RGBToHSV(0, 0, 0), qt.Equals, HSVColor{})
	c.Assert(RGBToHSV(255, 255, 255), qt.Equals, HSVColor{Value: 1})
	c.Assert(RGBToHSV(255, 0, 0), qt.Equals, HSVColor{Hue: 0, Saturation: 1, Value: 1})
	c.Assert(RGBToHSV(0, 255, 0), approx, HSVColor{Hue: 1.0 / 3, Saturation: 1, Value: 1})
	// Red is the max channel and green < blue, the hue wraps.
	c.Assert(RGBToHSV(255, 0, 127.5), approx, HSVColor{Hue: 11.0 / 12, Saturation: 1, Value: 1})

	for r := 0.0; r <= 255; r += 51 {
		for g := 0.0; g <= 255; g += 51 {
			for b := 0.0; b <= 255; b += 51 {
				hsv := RGBToHSV(r, g, b)
				back := HSVA(hsv.Hue*360, hsv.Saturation, hsv.Value, 1)
				c.Assert(back.RGB, qt.CmpEquals(cmpopts.EquateApprox(0, 1e-9)), [3]float64{r, g, b})
			}
		}
	}
}

func TestColorCSS(t *testing.T) {
	c := qt.New(t)

	c.Assert(NewColor(255, 0, 0, 1).CSS(), qt.Equals, "#ff0000")
	c.Assert(NewColor(300, -4, 12.5, 1).CSS(), qt.Equals, "#ff000d")
	c.Assert(NewColor(10, 20, 30, 0.5).CSS(), qt.Equals, "rgba(10, 20, 30, 0.5)")
	c.Assert(NewColor(10, 20, 30, 0.5).ARGB(), qt.Equals, "#800a141e")
	c.Assert(NewColor(10, 20, 30, 1).ARGB(), qt.Equals, "#ff0a141e")
}

func TestParseHex(t *testing.T) {
	c := qt.New(t)

	col, err := ParseHex("#f80")
	c.Assert(err, qt.IsNil)
	c.Assert(col, qt.Equals, NewColor(255, 136, 0, 1))

	col, err = ParseHex("#0a141e")
	c.Assert(err, qt.IsNil)
	c.Assert(col, qt.Equals, NewColor(10, 20, 30, 1))

	_, err = ParseHex("0a141e")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestMix(t *testing.T) {
	c := qt.New(t)

	for _, col := range []Color{NewColor(10, 20, 30, 1), NewColor(200, 100, 0, 0.3)} {
		for _, w := range []float64{0, 13, 50, 100} {
			c.Assert(Mix(col, col, w).RGB, approx, col.RGB)
			c.Assert(Mix(col, col, w).Alpha, qt.CmpEquals(cmpopts.EquateApprox(0, 1e-12)), col.Alpha)
		}
	}

	c.Assert(Mix(NewColor(255, 0, 0, 1), NewColor(0, 0, 255, 1), 50).CSS(), qt.Equals, "#800080")
	c.Assert(Mix(NewColor(255, 0, 0, 1), NewColor(0, 0, 255, 1), 100).CSS(), qt.Equals, "#ff0000")

	// w*a == -1: all weight on the second color.
	m := Mix(NewColor(255, 0, 0, 1), NewColor(0, 0, 255, 0), 0)
	c.Assert(m.RGB, qt.Equals, [3]float64{0, 0, 255})
	c.Assert(m.Alpha, qt.Equals, 0.0)
}

func TestGTKMix(t *testing.T) {
	c := qt.New(t)

	m := GTKMix(NewColor(0, 0, 0, 0), NewColor(200, 100, 50, 1), 0.25)
	c.Assert(m, qt.Equals, NewColor(50, 25, 12.5, 0.25))
}

func TestLuma(t *testing.T) {
	c := qt.New(t)

	c.Assert(Luma(NewColor(255, 255, 255, 1)), approx, 1.0)
	c.Assert(Luma(NewColor(255, 255, 255, 0.5)), approx, 0.5)
	c.Assert(Luma(NewColor(0, 255, 0, 1)), approx, 0.7152)
}

func TestClamp(t *testing.T) {
	c := qt.New(t)

	c.Assert(clamp(1.4), qt.Equals, 1.0)
	c.Assert(clamp(-0.1), qt.Equals, 0.0)
	c.Assert(clamp(0.3), qt.Equals, 0.3)
}
