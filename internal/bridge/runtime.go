package bridge

import (
	"context"
	"fmt"
	"io"

	"github.com/dop251/goja"
	"github.com/yacobolo/seess"
)

// Runtime is a JavaScript host with the seess bridge installed.
// A Runtime must not be used from more than one goroutine at a time.
type Runtime struct {
	vm *goja.Runtime
}

// New creates a runtime whose console writes to stdout and stderr.
func New(stdout, stderr io.Writer) (*Runtime, error) {
	vm := goja.New()

	c := &consoleAPI{stdout: stdout, stderr: stderr}
	if err := c.register(vm); err != nil {
		return nil, fmt.Errorf("registering console: %w", err)
	}

	if err := Register(vm); err != nil {
		return nil, err
	}

	return &Runtime{vm: vm}, nil
}

// Run executes src as a script named name. The script is interrupted when
// ctx is cancelled; an already cancelled ctx runs nothing.
func (r *Runtime) Run(ctx context.Context, name, src string) (goja.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		r.vm.Interrupt(ctx.Err())
		close(interrupted)
	})
	defer func() {
		// The interrupt must land before it is cleared, or it leaks into the next Run
		if !stop() {
			<-interrupted
		}
		r.vm.ClearInterrupt()
	}()

	value, err := r.vm.RunScript(name, src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return value, nil
}

// AnalyzeCSS calls analyze_css_js inside the runtime and converts the result
// back to Go.
func (r *Runtime) AnalyzeCSS(input string) (seess.CSSAnalysis, error) {
	fn, ok := goja.AssertFunction(r.vm.Get(AnalyzeFuncName))
	if !ok {
		return seess.CSSAnalysis{}, fmt.Errorf("%s is not installed", AnalyzeFuncName)
	}

	value, err := fn(goja.Undefined(), r.vm.ToValue(input))
	if err != nil {
		return seess.CSSAnalysis{}, fmt.Errorf("calling %s: %w", AnalyzeFuncName, err)
	}

	return FromValue(r.vm, value)
}
