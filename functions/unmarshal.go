package functions

import (
	"reflect"
)

// UnmarshalValue converts a call argument to the parameter type inType of a
// custom function. Numbers are normalized with the same rules as the color
// functions, i.e. 50% becomes 0.5.
func UnmarshalValue(input Value, inType reflect.Type) (returns reflect.Value, err error) {
	if inType == valueType {
		if input == nil {
			return reflect.Zero(inType), nil
		}
		returns = reflect.New(inType).Elem()
		returns.Set(reflect.ValueOf(input))
		return
	}
	if iv := reflect.ValueOf(input); iv.IsValid() && iv.Type() == inType {
		return iv, nil
	}

	switch inType.Kind() {
	case reflect.String:
		returns = reflect.New(inType).Elem()
		returns.SetString(text(input))
	case reflect.Bool:
		k, ok := input.(Keyword)
		if !ok || (k != True && k != False) {
			err = argumentError("expected true or false, got %s", kindOf(input))
			return
		}
		returns = reflect.New(inType).Elem()
		returns.SetBool(k == True)
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = number(input); err != nil {
			return
		}
		returns = reflect.New(inType).Elem()
		returns.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var f float64
		if f, err = number(input); err != nil {
			return
		}
		returns = reflect.New(inType).Elem()
		returns.SetInt(int64(f))
	case reflect.Slice:
		contents, ok := input.(List)
		if !ok {
			contents = List{input}
		}
		returns = reflect.MakeSlice(inType, 0, len(contents))
		var element reflect.Value
		for _, content := range contents {
			if element, err = UnmarshalValue(content, inType.Elem()); err != nil {
				return
			}
			returns = reflect.Append(returns, element)
		}
	default:
		err = argumentError("unsupported argument type %s, got %s", inType, kindOf(input))
	}
	return
}
