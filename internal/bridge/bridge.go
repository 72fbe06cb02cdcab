// Package bridge exposes the seess analyzer to an embedded JavaScript host.
//
// Register installs two globals into a goja runtime:
//
//	analyze_css_js(input) -> {selector_count, rule_count, property_count}
//	get_version()         -> "0.1.0"
//
// Results cross the boundary through their JSON form, so the field names seen
// by scripts are exactly the ones used by every other serialized representation.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"github.com/yacobolo/seess"
)

// Names of the functions installed by Register
const (
	AnalyzeFuncName = "analyze_css_js"
	VersionFuncName = "get_version"
)

// SerializationError reports that a value could not be converted between Go
// and the JavaScript host.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "serialization error: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Register installs analyze_css_js and get_version as globals in vm.
func Register(vm *goja.Runtime) error {
	if err := vm.Set(AnalyzeFuncName, func(call goja.FunctionCall) goja.Value {
		input := ""
		if arg := call.Argument(0); !goja.IsUndefined(arg) {
			input = arg.String()
		}

		value, err := ToValue(vm, seess.AnalyzeCSS(input))
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return value
	}); err != nil {
		return fmt.Errorf("registering %s: %w", AnalyzeFuncName, err)
	}

	if err := vm.Set(VersionFuncName, func(goja.FunctionCall) goja.Value {
		return vm.ToValue(seess.Version)
	}); err != nil {
		return fmt.Errorf("registering %s: %w", VersionFuncName, err)
	}

	return nil
}

// ToValue converts analysis to a plain JavaScript object.
func ToValue(vm *goja.Runtime, analysis seess.CSSAnalysis) (goja.Value, error) {
	return toJSValue(vm, analysis)
}

// FromValue converts a JavaScript object produced by ToValue (or any object
// with the same fields) back into a CSSAnalysis.
func FromValue(vm *goja.Runtime, value goja.Value) (seess.CSSAnalysis, error) {
	var analysis seess.CSSAnalysis

	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return analysis, &SerializationError{Err: errors.New("value is null or undefined")}
	}

	stringify, err := jsonFunc(vm, "stringify")
	if err != nil {
		return analysis, err
	}

	encoded, err := stringify(goja.Undefined(), value)
	if err != nil {
		return analysis, &SerializationError{Err: err}
	}

	if err := json.Unmarshal([]byte(encoded.String()), &analysis); err != nil {
		return analysis, &SerializationError{Err: err}
	}
	return analysis, nil
}

// toJSValue marshals v to JSON and parses it inside the runtime, yielding a
// native object whose keys follow the Go struct tag order.
func toJSValue(vm *goja.Runtime, v any) (goja.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	parse, err := jsonFunc(vm, "parse")
	if err != nil {
		return nil, err
	}

	value, err := parse(goja.Undefined(), vm.ToValue(string(data)))
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return value, nil
}

// jsonFunc looks up JSON.<name> in the runtime
func jsonFunc(vm *goja.Runtime, name string) (goja.Callable, error) {
	global := vm.Get("JSON")
	if global == nil || goja.IsUndefined(global) {
		return nil, &SerializationError{Err: errors.New("JSON is not available in this runtime")}
	}

	fn, ok := goja.AssertFunction(global.ToObject(vm).Get(name))
	if !ok {
		return nil, &SerializationError{Err: fmt.Errorf("JSON.%s is not a function", name)}
	}
	return fn, nil
}
