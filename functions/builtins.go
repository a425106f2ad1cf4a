package functions

import (
	"fmt"
	"math"
	"sort"
)

// Op identifies a built-in function.
type Op int

const (
	OpRGB Op = iota
	OpRGBA
	OpHSL
	OpHSLA
	OpHSV
	OpHSVA
	OpHue
	OpSaturation
	OpLightness
	OpRed
	OpGreen
	OpBlue
	OpAlpha
	OpGTKAlpha
	OpLuma
	OpSaturate
	OpDesaturate
	OpLighten
	OpDarken
	OpShade
	OpGTKShade
	OpFadeIn
	OpFadeOut
	OpFade
	OpSpin
	OpMix
	OpGTKMix
	OpGreyscale
	OpContrast
	OpE
	OpEscape
	OpFormat
	OpRound
	OpCeil
	OpFloor
	OpARGB
	OpPercentage
	OpColor
	OpIsColor
	OpIsNumber
	OpIsString
	OpIsKeyword
	OpIsURL
	OpIsPixel
	OpIsPercentage
	OpIsEm
	OpMultiply
	OpScreen
	OpOverlay
	OpSoftLight
	OpHardLight
	OpDifference
	OpExclusion
	OpAverage
	OpNegation
	OpTint
	OpGTKGradient
	OpGTKFrom
	OpGTKTo
	OpGTKColorStop

	numOps
)

// variadic marks a builtin without an upper argument bound.
const variadic = -1

type builtin struct {
	name    string
	minArgs int
	maxArgs int
	fn      func(args []Value) (Value, error)
}

var builtins = [numOps]builtin{
	OpRGB:  {"rgb", 3, 3, rgb},
	OpRGBA: {"rgba", 4, 4, rgba},
	OpHSL:  {"hsl", 3, 3, hsl},
	OpHSLA: {"hsla", 4, 4, hsla},
	OpHSV:  {"hsv", 3, 3, hsv},
	OpHSVA: {"hsva", 4, 4, hsva},

	OpHue: {"hue", 1, 1, hslProjection(func(hsl HSLColor) Dimension {
		return Dimension{Value: jsRound(hsl.Hue)}
	})},
	OpSaturation: {"saturation", 1, 1, hslProjection(func(hsl HSLColor) Dimension {
		return Dimension{Value: jsRound(hsl.Saturation * 100), Unit: "%"}
	})},
	OpLightness: {"lightness", 1, 1, hslProjection(func(hsl HSLColor) Dimension {
		return Dimension{Value: jsRound(hsl.Lightness * 100), Unit: "%"}
	})},
	OpRed:   {"red", 1, 1, channelProjection(0)},
	OpGreen: {"green", 1, 1, channelProjection(1)},
	OpBlue:  {"blue", 1, 1, channelProjection(2)},
	// A raw fraction, unlike saturation and lightness.
	OpAlpha: {"alpha", 1, 1, hslProjection(func(hsl HSLColor) Dimension {
		return Dimension{Value: hsl.Alpha}
	})},
	OpLuma: {"luma", 1, 1, luma},

	// Factor in 0..2; below 1 is more transparent, above 1 more opaque.
	OpGTKAlpha: {"gtk_alpha", 2, 2, adjustHSL(func(hsl HSLColor, factor float64) HSLColor {
		hsl.Alpha = clamp(hsl.Alpha * factor)
		return hsl
	})},
	OpSaturate: {"saturate", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Saturation = clamp(hsl.Saturation + amount/100)
		return hsl
	})},
	OpDesaturate: {"desaturate", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Saturation = clamp(hsl.Saturation - amount/100)
		return hsl
	})},
	OpLighten: {"lighten", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Lightness = clamp(hsl.Lightness + amount/100)
		return hsl
	})},
	OpDarken: {"darken", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Lightness = clamp(hsl.Lightness - amount/100)
		return hsl
	})},
	OpShade: {"shade", 2, 2, mixWith(NewColor(0, 0, 0, 1))},
	// Factor in 0..2; 0 gives black, 1 leaves the color as is and 2 gives white.
	OpGTKShade: {"gtk_shade", 2, 2, adjustHSL(func(hsl HSLColor, factor float64) HSLColor {
		hsl.Saturation = clamp(hsl.Saturation * factor)
		hsl.Lightness = clamp(hsl.Lightness * factor)
		return hsl
	})},
	OpFadeIn: {"fadein", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Alpha = clamp(hsl.Alpha + amount/100)
		return hsl
	})},
	OpFadeOut: {"fadeout", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Alpha = clamp(hsl.Alpha - amount/100)
		return hsl
	})},
	OpFade: {"fade", 2, 2, adjustHSL(func(hsl HSLColor, amount float64) HSLColor {
		hsl.Alpha = clamp(amount / 100)
		return hsl
	})},
	OpSpin: {"spin", 2, 2, adjustHSL(func(hsl HSLColor, degrees float64) HSLColor {
		hue := math.Mod(hsl.Hue+degrees, 360)
		if hue < 0 {
			hue += 360
		}
		hsl.Hue = hue
		return hsl
	})},
	OpMix:    {"mix", 2, 3, mix},
	OpGTKMix: {"gtk_mix", 3, 3, gtkMix},
	OpGreyscale: {"greyscale", 1, 1, func(args []Value) (Value, error) {
		c, err := color(args[0])
		if err != nil {
			return nil, err
		}
		hsl := c.ToHSL()
		hsl.Saturation = clamp(hsl.Saturation - 1)
		return hsl.Color(), nil
	}},
	OpContrast: {"contrast", 1, 4, contrast},

	OpE:          {"e", 1, 1, e},
	OpEscape:     {"escape", 1, 1, escape},
	OpFormat:     {"%", 1, variadic, format},
	OpRound:      {"round", 1, 2, round},
	OpCeil:       {"ceil", 1, 1, mathFunc(math.Ceil)},
	OpFloor:      {"floor", 1, 1, mathFunc(math.Floor)},
	OpARGB:       {"argb", 1, 1, argb},
	OpPercentage: {"percentage", 1, 1, percentage},
	OpColor:      {"color", 1, 1, parseColor},

	OpIsColor: {"iscolor", 1, 1, isa(func(v Value) bool {
		_, ok := v.(Color)
		return ok
	})},
	OpIsNumber: {"isnumber", 1, 1, isa(func(v Value) bool {
		_, ok := v.(Dimension)
		return ok
	})},
	OpIsString: {"isstring", 1, 1, isa(func(v Value) bool {
		_, ok := v.(Quoted)
		return ok
	})},
	OpIsKeyword: {"iskeyword", 1, 1, isa(func(v Value) bool {
		_, ok := v.(Keyword)
		return ok
	})},
	OpIsURL: {"isurl", 1, 1, isa(func(v Value) bool {
		_, ok := v.(URL)
		return ok
	})},
	OpIsPixel:      {"ispixel", 1, 1, isUnit("px")},
	OpIsPercentage: {"ispercentage", 1, 1, isUnit("%")},
	OpIsEm:         {"isem", 1, 1, isUnit("em")},

	OpMultiply:   {"multiply", 2, 2, blend(Multiply)},
	OpScreen:     {"screen", 2, 2, blend(Screen)},
	OpOverlay:    {"overlay", 2, 2, blend(Overlay)},
	OpSoftLight:  {"softlight", 2, 2, blend(SoftLight)},
	OpHardLight:  {"hardlight", 2, 2, blend(HardLight)},
	OpDifference: {"difference", 2, 2, blend(Difference)},
	OpExclusion:  {"exclusion", 2, 2, blend(Exclusion)},
	OpAverage:    {"average", 2, 2, blend(Average)},
	OpNegation:   {"negation", 2, 2, blend(Negation)},
	OpTint:       {"tint", 2, 2, mixWith(NewColor(255, 255, 255, 1))},

	OpGTKGradient:  {"gtk_gradient", 5, variadic, gradient},
	OpGTKFrom:      {"gtk_from", 1, 1, gradientEndpoint("0%")},
	OpGTKTo:        {"gtk_to", 1, 1, gradientEndpoint("100%")},
	OpGTKColorStop: {"gtk_color_stop", 2, 2, colorStop},
}

var opsByName map[string]Op

func init() {
	opsByName = make(map[string]Op, numOps)
	for op, b := range builtins {
		opsByName[b.name] = Op(op)
	}
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// Names returns the names of all builtins, sorted.
func Names() []string {
	names := make([]string, 0, numOps)
	for _, b := range builtins {
		names = append(names, b.name)
	}
	sort.Strings(names)
	return names
}

func (op Op) String() string {
	if op < 0 || op >= numOps {
		return "unknown"
	}
	return builtins[op].name
}

// Call invokes the builtin with already evaluated arguments.
func (op Op) Call(args ...Value) (Value, error) {
	if op < 0 || op >= numOps {
		return nil, argumentError("unknown function %d", int(op))
	}
	b := builtins[op]
	if len(args) < b.minArgs || (b.maxArgs != variadic && len(args) > b.maxArgs) {
		return nil, argumentError("%s: %s, got %d", b.name, b.arity(), len(args))
	}
	return b.fn(args)
}

// Call invokes the builtin named name.
func Call(name string, args ...Value) (Value, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, argumentError("function %q not found", name)
	}
	return op.Call(args...)
}

func (b builtin) arity() string {
	switch {
	case b.maxArgs == variadic:
		return fmt.Sprintf("expected at least %d arguments", b.minArgs)
	case b.minArgs == b.maxArgs:
		return fmt.Sprintf("expected %d arguments", b.minArgs)
	default:
		return fmt.Sprintf("expected %d to %d arguments", b.minArgs, b.maxArgs)
	}
}

func rgb(args []Value) (Value, error) {
	return rgba(append(args[:3:3], Dimension{Value: 1}))
}

func rgba(args []Value) (Value, error) {
	n, err := numbers(args)
	if err != nil {
		return nil, err
	}
	return NewColor(n[0], n[1], n[2], n[3]), nil
}

func hsl(args []Value) (Value, error) {
	return hsla(append(args[:3:3], Dimension{Value: 1}))
}

func hsla(args []Value) (Value, error) {
	n, err := numbers(args)
	if err != nil {
		return nil, err
	}
	return HSLA(n[0], n[1], n[2], n[3]), nil
}

func hsv(args []Value) (Value, error) {
	return hsva(append(args[:3:3], Dimension{Value: 1}))
}

func hsva(args []Value) (Value, error) {
	n, err := numbers(args)
	if err != nil {
		return nil, err
	}
	return HSVA(n[0], n[1], n[2], n[3]), nil
}

func hslProjection(f func(hsl HSLColor) Dimension) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		c, err := color(args[0])
		if err != nil {
			return nil, err
		}
		return f(c.ToHSL()), nil
	}
}

func channelProjection(i int) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		c, err := color(args[0])
		if err != nil {
			return nil, err
		}
		return Dimension{Value: c.RGB[i]}, nil
	}
}

func luma(args []Value) (Value, error) {
	c, err := color(args[0])
	if err != nil {
		return nil, err
	}
	return Dimension{Value: jsRound(Luma(c) * 100), Unit: "%"}, nil
}

// adjustHSL converts the color argument to HSL, lets f derive a new HSL
// color from it and the amount argument, and converts back.
func adjustHSL(f func(hsl HSLColor, amount float64) HSLColor) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		c, err := color(args[0])
		if err != nil {
			return nil, err
		}
		n, err := amount(args[1])
		if err != nil {
			return nil, err
		}
		return f(c.ToHSL(), n).Color(), nil
	}
}

func mix(args []Value) (Value, error) {
	c1, c2, err := colors(args[0], args[1])
	if err != nil {
		return nil, err
	}
	weight := 50.0
	if len(args) > 2 {
		if weight, err = amount(args[2]); err != nil {
			return nil, err
		}
	}
	return Mix(c1, c2, weight), nil
}

// mixWith mixes base into the color argument, weighted by the amount.
func mixWith(base Color) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		c, err := color(args[0])
		if err != nil {
			return nil, err
		}
		weight, err := amount(args[1])
		if err != nil {
			return nil, err
		}
		return Mix(base, c, weight), nil
	}
}

func gtkMix(args []Value) (Value, error) {
	c1, c2, err := colors(args[0], args[1])
	if err != nil {
		return nil, err
	}
	t, err := amount(args[2])
	if err != nil {
		return nil, err
	}
	return GTKMix(c1, c2, t), nil
}

func contrast(args []Value) (Value, error) {
	c, err := color(args[0])
	if err != nil {
		return nil, err
	}
	var (
		dark      Value = NewColor(0, 0, 0, 1)
		light     Value = NewColor(255, 255, 255, 1)
		threshold       = 0.43
	)
	if len(args) > 1 {
		dark = args[1]
	}
	if len(args) > 2 {
		light = args[2]
	}
	if len(args) > 3 {
		if threshold, err = amount(args[3]); err != nil {
			return nil, err
		}
	}
	if Luma(c) < threshold {
		return light, nil
	}
	return dark, nil
}

func round(args []Value) (Value, error) {
	d, ok := args[0].(Dimension)
	if !ok {
		return nil, argumentError("argument must be a number")
	}
	var places float64
	if len(args) > 1 {
		var err error
		if places, err = amount(args[1]); err != nil {
			return nil, err
		}
	}
	p := math.Pow(10, math.Trunc(places))
	return Dimension{Value: math.Round(d.Value*p) / p, Unit: d.Unit}, nil
}

func mathFunc(f func(float64) float64) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		d, ok := args[0].(Dimension)
		if !ok {
			return nil, argumentError("argument must be a number")
		}
		return Dimension{Value: f(d.Value), Unit: d.Unit}, nil
	}
}

func argb(args []Value) (Value, error) {
	c, err := color(args[0])
	if err != nil {
		return nil, err
	}
	return Anonymous(c.ARGB()), nil
}

func percentage(args []Value) (Value, error) {
	n, err := amount(args[0])
	if err != nil {
		return nil, err
	}
	return Dimension{Value: n * 100, Unit: "%"}, nil
}

func parseColor(args []Value) (Value, error) {
	q, ok := args[0].(Quoted)
	if !ok {
		return nil, argumentError("argument must be a string")
	}
	c, err := ParseHex(q.Value)
	if err != nil {
		return nil, argumentError("argument must be a hex color, got %q", q.Value)
	}
	return c, nil
}

func isa(f func(Value) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		return boolean(f(args[0])), nil
	}
}

func isUnit(unit string) func([]Value) (Value, error) {
	return isa(func(v Value) bool {
		d, ok := v.(Dimension)
		return ok && d.Unit == unit
	})
}

func blend(mode BlendMode) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		c1, c2, err := colors(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return Blend(c1, c2, mode), nil
	}
}
