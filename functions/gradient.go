package functions

import (
	"strings"
)

type gradientDirection int

const (
	horizontal gradientDirection = iota
	vertical
)

// gradientSyntax renders one vendor variant of a gradient declaration.
type gradientSyntax struct {
	prefix string
	// Whether the declaration is preceded by "property: ".
	withProperty bool
	// The direction arguments, indexed by gradientDirection.
	direction [2]string
	// The legacy WebKit syntax takes the type as an argument and wraps
	// stops in color-stop().
	legacyWebKit bool
}

var gradientSyntaxes = []gradientSyntax{
	// Firefox 3.6+. The property is written by the caller.
	{prefix: "-moz-", direction: [2]string{" to right", " to bottom"}},
	// Chrome, Safari 4+.
	{prefix: "-webkit-", withProperty: true, legacyWebKit: true, direction: [2]string{", left top, right top", ", left top, left bottom"}},
	// Chrome 10+, Safari 5.1+.
	{prefix: "-webkit-", withProperty: true, direction: [2]string{" left", " top"}},
	// Opera 11.10+.
	{prefix: "-o-", withProperty: true, direction: [2]string{" left", " top"}},
	// IE10+.
	{prefix: "-ms-", withProperty: true, direction: [2]string{" left", " top"}},
	// W3C.
	{withProperty: true, direction: [2]string{" left", " top"}},
}

func (g gradientSyntax) write(b *strings.Builder, property, typ string, dir gradientDirection, stops []GradientStop) {
	if g.withProperty {
		b.WriteString(property)
		b.WriteString(": ")
	}
	b.WriteString(g.prefix)
	if g.legacyWebKit {
		b.WriteString("gradient(")
		b.WriteString(typ)
	} else {
		b.WriteString(typ)
		b.WriteString("-gradient(")
	}
	b.WriteString(g.direction[dir])
	for _, stop := range stops {
		if g.legacyWebKit {
			b.WriteString(", color-stop(" + stop.Position + "," + stop.Color + ")")
		} else {
			b.WriteString(", " + stop.Color + " " + stop.Position)
		}
	}
	b.WriteString(");")
}

// Gradient renders a cross browser gradient for property. The first vendor
// variant is written without the property name, so the caller is expected
// to place the result after "property: ". The IE filter fallback is only
// added for background-image.
func Gradient(property, typ, from, to string, stops []GradientStop) string {
	dir := horizontal
	if (from == "left" && to == "left") || (from == "right" && to == "right") {
		dir = vertical
	}

	var b strings.Builder
	for _, syntax := range gradientSyntaxes {
		syntax.write(&b, property, typ, dir, stops)
		b.WriteString("\n  ")
	}

	if property == "background-image" && len(stops) > 0 {
		gradientType := "1"
		if dir == vertical {
			gradientType = "0"
		}
		b.WriteString("filter: progid:DXImageTransform.Microsoft.gradient( ")
		b.WriteString(" startColorstr='" + stops[0].Color + "'")
		b.WriteString(", endColorstr='" + stops[len(stops)-1].Color + "'")
		b.WriteString(", GradientType=" + gradientType + ")")
	}

	return b.String()
}

func gradient(args []Value) (Value, error) {
	stops := make([]GradientStop, len(args)-4)
	for i, arg := range args[4:] {
		stop, ok := arg.(GradientStop)
		if !ok {
			return nil, argumentError("gtk_gradient: argument %d must be a color stop, got %s", i+5, kindOf(arg))
		}
		stops[i] = stop
	}
	return Anonymous(Gradient(text(args[0]), text(args[1]), firstWord(args[2]), firstWord(args[3]), stops)), nil
}

// firstWord returns the first component of a position such as "left top".
func firstWord(v Value) string {
	if l, ok := v.(List); ok {
		if len(l) == 0 {
			return ""
		}
		v = l[0]
	}
	fields := strings.Fields(text(v))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func gradientEndpoint(position string) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		return GradientStop{Position: position, Color: args[0].CSS()}, nil
	}
}

func colorStop(args []Value) (Value, error) {
	position, err := amount(args[0])
	if err != nil {
		return nil, err
	}
	return GradientStop{Position: formatFloat(position*100) + "%", Color: args[1].CSS()}, nil
}
