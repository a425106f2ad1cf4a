package functions

import (
	"fmt"
	"reflect"
)

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// MarshalValue converts the result of a custom function to a Value.
// Strings become quoted strings, bools the True/False keywords, numbers
// unitless dimensions and slices space separated lists.
func MarshalValue(input reflect.Value) (returns Value, err error) {
	if !input.IsValid() {
		err = fmt.Errorf("invalid value")
		return
	}
	if input.Kind() == reflect.Interface {
		if input.IsNil() {
			err = argumentError("function returned nothing")
			return
		}
		input = input.Elem()
	}
	if input.Type().Implements(valueType) {
		returns = input.Interface().(Value)
		return
	}
	switch input.Kind() {
	case reflect.String:
		returns = NewQuoted(input.String())
	case reflect.Bool:
		returns = boolean(input.Bool())
	case reflect.Float32, reflect.Float64:
		returns = Dimension{Value: input.Float()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		returns = Dimension{Value: float64(input.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		returns = Dimension{Value: float64(input.Uint())}
	case reflect.Array, reflect.Slice:
		var content Value
		list := make(List, 0, input.Len())
		for i := 0; i < input.Len(); i++ {
			if content, err = MarshalValue(input.Index(i)); err != nil {
				return
			}
			list = append(list, content)
		}
		returns = list
	default:
		err = fmt.Errorf("unknown value %s", input.Type())
	}
	return
}
