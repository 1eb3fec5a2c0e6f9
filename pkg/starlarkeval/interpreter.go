// Package starlarkeval runs starlark configuration files against a set of
// predeclared builtins.
package starlarkeval

import (
	"errors"
	"fmt"
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Interpreter struct {
	// Builtins visible to every file
	predeclared starlark.StringDict
	// Global state after the last Exec
	globals starlark.StringDict
	// Thread context
	thread *starlark.Thread
}

// Reporter receives the output of the starlark print() function.
// *testing.T.Logf satisfies it.
type Reporter func(format string, args ...any)

func NewInterpreter(reporter Reporter, predeclared starlark.StringDict) *Interpreter {
	return &Interpreter{
		predeclared: predeclared,
		globals:     starlark.StringDict{},
		thread: &starlark.Thread{
			Name: "config",
			Print: func(_ *starlark.Thread, msg string) {
				reporter("%s", msg)
			},
			Load: func(_ *starlark.Thread, module string) (starlark.StringDict, error) {
				return nil, fmt.Errorf("load(%q): load statements are not supported", module)
			},
		},
	}
}

// GetGlobal returns a global defined by the last executed file.
func (i *Interpreter) GetGlobal(name string) starlark.Value {
	return i.globals[name]
}

// Exec runs the file. Evaluation errors carry the starlark backtrace.
func (i *Interpreter) Exec(filename string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read %q: %w", filename, err)
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, i.thread, filename, data, i.predeclared)
	if globals != nil {
		i.globals = globals
	}
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return fmt.Errorf("%s", evalErr.Backtrace())
	}
	return err
}
