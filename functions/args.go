package functions

import "math"

// number normalizes a numeric argument to a plain float. A % Dimension is
// divided by 100.
func number(v Value) (float64, error) {
	d, ok := v.(Dimension)
	if !ok {
		return 0, runtimeError("color functions take numbers as parameters")
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return 0, runtimeError("%s is not a finite number", formatFloat(d.Value))
	}
	if d.Unit == "%" {
		return d.Value / 100, nil
	}
	return d.Value, nil
}

func numbers(args []Value) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, err := number(arg)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

// amount returns the magnitude of an amount argument, ignoring its unit.
func amount(v Value) (float64, error) {
	d, ok := v.(Dimension)
	if !ok {
		return 0, argumentError("argument must be a number, got %s", kindOf(v))
	}
	return d.Value, nil
}

func color(v Value) (Color, error) {
	c, ok := v.(Color)
	if !ok {
		return Color{}, argumentError("argument must be a color, got %s", kindOf(v))
	}
	return c, nil
}

func colors(c1, c2 Value) (Color, Color, error) {
	a, err := color(c1)
	if err != nil {
		return Color{}, Color{}, err
	}
	b, err := color(c2)
	if err != nil {
		return Color{}, Color{}, err
	}
	return a, b, nil
}

// text returns the string content of v, unquoting quoted strings.
func text(v Value) string {
	switch vv := v.(type) {
	case Quoted:
		return vv.Value
	case nil:
		return ""
	default:
		return vv.CSS()
	}
}

func kindOf(v Value) string {
	switch v.(type) {
	case Color:
		return "color"
	case Dimension:
		return "number"
	case Quoted:
		return "string"
	case Keyword:
		return "keyword"
	case Anonymous:
		return "anonymous"
	case URL:
		return "url"
	case List:
		return "list"
	case GradientStop:
		return "gradient stop"
	case nil:
		return "nothing"
	default:
		return "unknown"
	}
}
