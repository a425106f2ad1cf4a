package functions

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type functionProxy func([]Value) (Value, error)

// FunctionRegistry dispatches calls to the builtins and to custom functions
// registered with typed Go signatures. A nil registry dispatches to the
// builtins only.
type FunctionRegistry struct {
	functions  map[string]functionProxy
	signatures []string
}

// NewFunctionRegistry creates a registry with the given custom functions,
// keyed by signature, e.g. "double($n)".
func NewFunctionRegistry(stubs map[string]interface{}) (registry *FunctionRegistry, err error) {
	registry = &FunctionRegistry{
		functions:  make(map[string]functionProxy),
		signatures: []string{},
	}
	if stubs == nil {
		return
	}
	signatures := make([]string, 0, len(stubs))
	for signature := range stubs {
		signatures = append(signatures, signature)
	}
	sort.Strings(signatures)
	for _, signature := range signatures {
		if err = registry.Register(signature, stubs[signature]); err != nil {
			return
		}
	}
	return
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Register adds fn under the name in signature. fn must be a function
// returning (T, error); its parameters are converted from the call
// arguments with UnmarshalValue and T is converted with MarshalValue.
func (r *FunctionRegistry) Register(signature string, fn interface{}) (err error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		err = fmt.Errorf("function-registry: invalid function")
		return
	}
	t := v.Type()
	if t.IsVariadic() {
		err = fmt.Errorf("function-registry: %q: variadic functions are not supported", signature)
		return
	}
	if t.NumOut() != 2 || !t.Out(1).Implements(errorType) {
		err = fmt.Errorf("function-registry: tuple error, expected returns: (T, error)")
		return
	}
	var name string
	if openParen := strings.IndexRune(signature, '('); openParen == -1 {
		err = fmt.Errorf("%q is missing %q", signature, "(")
		return
	} else {
		name = signature[:openParen]
	}
	if _, found := Lookup(name); found {
		err = fmt.Errorf("function-registry: %q is a builtin", name)
		return
	}
	if _, found := r.functions[name]; found {
		err = fmt.Errorf("function-registry: %q already registered", name)
		return
	}
	r.signatures = append(r.signatures, signature)
	r.functions[name] = func(inputs []Value) (output Value, err error) {
		if len(inputs) != t.NumIn() {
			err = argumentError("%s: expected %d arguments, got %d", name, t.NumIn(), len(inputs))
			return
		}
		var value reflect.Value
		inputValues := make([]reflect.Value, 0, len(inputs))
		for i := 0; i < t.NumIn(); i++ {
			value, err = UnmarshalValue(inputs[i], t.In(i))
			if err != nil {
				return
			}
			inputValues = append(inputValues, value)
		}
		outputValues := v.Call(inputValues)
		if !outputValues[1].IsNil() {
			err = asFunctionError(outputValues[1].Interface().(error))
			return
		}
		output, err = MarshalValue(outputValues[0])
		return
	}
	return
}

// Execute calls the function registered as name with args.
func (r *FunctionRegistry) Execute(name string, args []Value) (Value, error) {
	if r != nil {
		if callback, ok := r.functions[name]; ok {
			return callback(args)
		}
	}
	return Call(name, args...)
}

// SignatureNames returns the signatures of the custom functions.
func (r *FunctionRegistry) SignatureNames() []string {
	if r == nil {
		return nil
	}
	var signatures []string
	for _, signature := range r.signatures {
		signatures = append(signatures, strings.Clone(signature))
	}
	return signatures
}

// asFunctionError makes sure err carries an ErrorKind.
func asFunctionError(err error) error {
	var ferr *Error
	if errors.As(err, &ferr) {
		return err
	}
	return &Error{Kind: RuntimeError, Message: err.Error()}
}
