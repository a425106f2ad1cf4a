package functions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a value kind produced or consumed by the expression evaluator.
type Value interface {
	// CSS renders the value the way it appears in the generated stylesheet.
	CSS() string
}

// Keyword is an unquoted identifier, e.g. left or bold.
type Keyword string

func (k Keyword) CSS() string { return string(k) }

// The evaluator's boolean sentinels.
const (
	True  Keyword = "true"
	False Keyword = "false"
)

func boolean(b bool) Keyword {
	if b {
		return True
	}
	return False
}

// Anonymous is opaque text passed through to the output as is.
type Anonymous string

func (a Anonymous) CSS() string { return string(a) }

// URL is the content of a url(...) value.
type URL string

func (u URL) CSS() string { return "url(" + string(u) + ")" }

// Quoted is a quoted string. Raw includes the quotes, Value does not.
type Quoted struct {
	Raw   string
	Value string
}

// NewQuoted creates a double quoted string with the given content.
func NewQuoted(s string) Quoted {
	return Quoted{Raw: `"` + s + `"`, Value: s}
}

func (q Quoted) CSS() string {
	if q.Raw == "" {
		return `"` + q.Value + `"`
	}
	return q.Raw
}

// Dimension is a number with an optional unit. A % unit means the logical
// value is Value/100.
type Dimension struct {
	Value float64
	Unit  string
}

func (d Dimension) CSS() string {
	return formatFloat(d.Value) + d.Unit
}

// List is a space separated list of values, e.g. "left top".
type List []Value

func (l List) CSS() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.CSS()
	}
	return strings.Join(parts, " ")
}

// Color is an RGB triple in 0..255 and an alpha in 0..1.
// Channels are not clamped until rendered.
type Color struct {
	RGB   [3]float64
	Alpha float64
}

// NewColor creates a new Color.
func NewColor(r, g, b, a float64) Color {
	return Color{RGB: [3]float64{r, g, b}, Alpha: a}
}

func (c Color) CSS() string {
	if c.Alpha < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.RGB[0]), channel(c.RGB[1]), channel(c.RGB[2]), formatFloat(c.Alpha))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.RGB[0]), channel(c.RGB[1]), channel(c.RGB[2]))
}

// ARGB renders c as #aarrggbb.
func (c Color) ARGB() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.Alpha*255), channel(c.RGB[0]), channel(c.RGB[1]), channel(c.RGB[2]))
}

func (c Color) String() string {
	return c.CSS()
}

// HSLColor is a color in the HSL space. Hue is in degrees, [0,360).
type HSLColor struct{ Hue, Saturation, Lightness, Alpha float64 }

func (c HSLColor) String() string {
	return fmt.Sprintf("hsla(%f, %f, %f, %0.2f)", c.Hue, c.Saturation, c.Lightness, c.Alpha)
}

// Color converts c back to RGB.
func (c HSLColor) Color() Color {
	return HSLA(c.Hue, c.Saturation, c.Lightness, c.Alpha)
}

// HSVColor is a color in the HSV space with all components in [0,1].
type HSVColor struct{ Hue, Saturation, Value float64 }

func (c HSVColor) String() string {
	return fmt.Sprintf("hsv(%f, %f, %f)", c.Hue, c.Saturation, c.Value)
}

// GradientStop is a color stop created by gtk_from, gtk_to and
// gtk_color_stop and consumed by gtk_gradient.
type GradientStop struct {
	Position string
	Color    string
}

func (s GradientStop) CSS() string {
	return s.Color + " " + s.Position
}

// jsRound rounds half up, i.e. towards positive infinity.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}

func channel(v float64) int {
	i := int(jsRound(v))
	if i > 255 {
		return 255
	}
	if i < 0 {
		return 0
	}
	return i
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
