// Package command registers seess operations as named, invocable commands and
// serves them to a user-facing control surface over HTTP.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCommand is returned when no command is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArguments is returned when command arguments cannot be decoded.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// HandlerFunc executes a command. args is the raw JSON argument object and may be empty.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Command is a named, invocable operation
type Command struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     HandlerFunc `json:"-"`
}

// Registry holds commands by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd to the registry
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return errors.New("command name is required")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %s: handler is required", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("%s: %w", cmd.Name, ErrDuplicateCommand)
	}
	r.commands[cmd.Name] = cmd
	return nil
}

// Lookup returns the command registered under name
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Invoke runs the command registered under name with the given arguments
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	cmd, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return cmd.Handler(ctx, args)
}

// decodeArgs decodes a JSON argument object into v. Empty args leave v unchanged.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
