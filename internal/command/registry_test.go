package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/seess"
)

func TestDefaultRegistry_Analyze(t *testing.T) {
	r := NewDefaultRegistry()

	result, err := r.Invoke(context.Background(), AnalyzeCommandName,
		json.RawMessage(`{"input": "h1, h2, h3 { font-weight: bold; }"}`))
	require.NoError(t, err)
	assert.Equal(t, seess.CSSAnalysis{SelectorCount: 3, RuleCount: 1, PropertyCount: 1}, result)
}

func TestDefaultRegistry_AnalyzeWithoutArgs(t *testing.T) {
	r := NewDefaultRegistry()

	result, err := r.Invoke(context.Background(), AnalyzeCommandName, nil)
	require.NoError(t, err)
	assert.Equal(t, seess.CSSAnalysis{}, result)
}

func TestDefaultRegistry_Version(t *testing.T) {
	r := NewDefaultRegistry()

	result, err := r.Invoke(context.Background(), VersionCommandName, nil)
	require.NoError(t, err)
	assert.Equal(t, VersionResult{Version: seess.Version}, result)
}

func TestInvoke_Errors(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Invoke(context.Background(), "nope", nil)
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	_, err = r.Invoke(context.Background(), AnalyzeCommandName, json.RawMessage(`{"input": 42}`))
	assert.True(t, errors.Is(err, ErrInvalidArguments))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Invoke(ctx, AnalyzeCommandName, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, json.RawMessage) (any, error) { return nil, nil }

	require.NoError(t, r.Register(Command{Name: "b", Handler: noop}))
	require.NoError(t, r.Register(Command{Name: "a", Handler: noop}))

	err := r.Register(Command{Name: "a", Handler: noop})
	assert.True(t, errors.Is(err, ErrDuplicateCommand))

	assert.Error(t, r.Register(Command{Name: "", Handler: noop}))
	assert.Error(t, r.Register(Command{Name: "c"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
}

func TestInvoke_Concurrent(t *testing.T) {
	r := NewDefaultRegistry()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			args := json.RawMessage(fmt.Sprintf(`{"input": ".c%d { a: b; }"}`, i))
			result, err := r.Invoke(context.Background(), AnalyzeCommandName, args)
			if err != nil {
				errs <- err
				return
			}
			if result != (seess.CSSAnalysis{SelectorCount: 1, RuleCount: 1, PropertyCount: 1}) {
				errs <- fmt.Errorf("unexpected result %+v", result)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
