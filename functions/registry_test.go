package functions

import (
	"errors"
	"reflect"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFunctionRegistry(t *testing.T) {
	c := qt.New(t)

	registry, err := NewFunctionRegistry(map[string]interface{}{
		"double($n)": func(n float64) (float64, error) {
			return n * 2, nil
		},
		"shout($s)": func(s string) (string, error) {
			return s + "!", nil
		},
		"invert($c)": func(col Color) (Value, error) {
			return NewColor(255-col.RGB[0], 255-col.RGB[1], 255-col.RGB[2], col.Alpha), nil
		},
		"sum($list)": func(ns []float64) (float64, error) {
			var sum float64
			for _, n := range ns {
				sum += n
			}
			return sum, nil
		},
		"both($a, $b)": func(a, b bool) (bool, error) {
			return a && b, nil
		},
		"fail()": func() (Value, error) {
			return nil, errors.New("boom")
		},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(registry.SignatureNames(), qt.DeepEquals, []string{"both($a, $b)", "double($n)", "fail()", "invert($c)", "shout($s)", "sum($list)"})

	v, err := registry.Execute("double", []Value{px(21)})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, num(42))

	v, err = registry.Execute("double", []Value{percent(50)})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, num(1))

	v, err = registry.Execute("shout", []Value{NewQuoted("hey")})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, NewQuoted("hey!"))

	v, err = registry.Execute("invert", []Value{rgbOf(255, 0, 10)})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, rgbOf(0, 255, 245))

	v, err = registry.Execute("sum", []Value{List{num(1), num(2), px(3)}})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, num(6))

	v, err = registry.Execute("both", []Value{True, False})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, False)

	// Builtins are reachable through the registry.
	v, err = registry.Execute("darken", []Value{rgbOf(255, 0, 0), percent(10)})
	c.Assert(err, qt.IsNil)
	c.Assert(v.CSS(), qt.Equals, "#cc0000")

	_, err = registry.Execute("fail", nil)
	assertErrorKind(c, err, RuntimeError)
	c.Assert(err, qt.ErrorMatches, "RuntimeError: boom")

	_, err = registry.Execute("double", []Value{Keyword("two")})
	assertErrorKind(c, err, RuntimeError)

	_, err = registry.Execute("double", nil)
	assertErrorKind(c, err, ArgumentError)

	_, err = registry.Execute("invert", []Value{px(1)})
	assertErrorKind(c, err, ArgumentError)

	_, err = registry.Execute("both", []Value{Keyword("maybe"), True})
	assertErrorKind(c, err, ArgumentError)
}

func TestFunctionRegistryNil(t *testing.T) {
	c := qt.New(t)

	var registry *FunctionRegistry
	v, err := registry.Execute("rgb", []Value{num(1), num(2), num(3)})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, rgbOf(1, 2, 3))
	c.Assert(registry.SignatureNames(), qt.IsNil)
}

func TestFunctionRegistryRegisterErrors(t *testing.T) {
	c := qt.New(t)

	registry, err := NewFunctionRegistry(nil)
	c.Assert(err, qt.IsNil)

	c.Assert(registry.Register("foo", func() (Value, error) { return nil, nil }), qt.ErrorMatches, `"foo" is missing "\("`)
	c.Assert(registry.Register("foo()", 32), qt.ErrorMatches, `.*invalid function`)
	c.Assert(registry.Register("foo()", func() Value { return nil }), qt.ErrorMatches, `.*tuple error.*`)
	c.Assert(registry.Register("join($parts...)", func(parts ...string) (string, error) { return "", nil }), qt.ErrorMatches, `.*variadic functions are not supported`)
	c.Assert(registry.Register("rgb($r, $g, $b)", func() (Value, error) { return nil, nil }), qt.ErrorMatches, `.*"rgb" is a builtin`)
	c.Assert(registry.Register("foo()", func() (Value, error) { return nil, nil }), qt.IsNil)
	c.Assert(registry.Register("foo($a)", func(Value) (Value, error) { return nil, nil }), qt.ErrorMatches, `.*already registered`)

	_, err = registry.Execute("foo", nil)
	assertErrorKind(c, err, ArgumentError)
}

func TestMarshalValue(t *testing.T) {
	c := qt.New(t)

	for _, test := range []struct {
		in     interface{}
		expect Value
	}{
		{"a", NewQuoted("a")},
		{true, True},
		{false, False},
		{1.5, num(1.5)},
		{3, num(3)},
		{uint8(4), num(4)},
		{px(2), px(2)},
		{Keyword("bold"), Keyword("bold")},
		{[]string{"a", "b"}, List{NewQuoted("a"), NewQuoted("b")}},
	} {
		v, err := MarshalValue(reflect.ValueOf(test.in))
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.DeepEquals, test.expect)
	}

	_, err := MarshalValue(reflect.ValueOf(map[string]int{}))
	c.Assert(err, qt.Not(qt.IsNil))
	_, err = MarshalValue(reflect.Value{})
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestUnmarshalValue(t *testing.T) {
	c := qt.New(t)

	v, err := UnmarshalValue(percent(25), reflect.TypeOf(0.0))
	c.Assert(err, qt.IsNil)
	c.Assert(v.Float(), qt.Equals, 0.25)

	v, err = UnmarshalValue(px(7), reflect.TypeOf(0))
	c.Assert(err, qt.IsNil)
	c.Assert(v.Int(), qt.Equals, int64(7))

	v, err = UnmarshalValue(px(7), reflect.TypeOf(Dimension{}))
	c.Assert(err, qt.IsNil)
	c.Assert(v.Interface(), qt.Equals, px(7))

	v, err = UnmarshalValue(Keyword("bold"), valueType)
	c.Assert(err, qt.IsNil)
	c.Assert(v.Interface(), qt.Equals, Keyword("bold"))

	v, err = UnmarshalValue(NewQuoted("x"), reflect.TypeOf(Keyword("")))
	c.Assert(err, qt.IsNil)
	c.Assert(v.Interface(), qt.Equals, Keyword("x"))

	v, err = UnmarshalValue(num(1), reflect.TypeOf([]int{}))
	c.Assert(err, qt.IsNil)
	c.Assert(v.Interface(), qt.DeepEquals, []int{1})

	_, err = UnmarshalValue(num(1), reflect.TypeOf(map[string]int{}))
	assertErrorKind(c, err, ArgumentError)
}
