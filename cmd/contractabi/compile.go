package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"contractabi/internal/abi"
	"contractabi/internal/config"
	"contractabi/internal/errors"
	"contractabi/internal/parser"
)

// compilation is the outcome of running one file through parsing and assembly.
type compilation struct {
	path        string
	source      string
	model       *abi.ContractModel
	diagnostics []errors.CompilerError
	failed      bool
}

func (c *compilation) warnings() int {
	n := 0
	for _, d := range c.diagnostics {
		if d.IsWarning() {
			n++
		}
	}
	return n
}

// report renders every diagnostic of the compilation with source context.
func (c *compilation) report() string {
	return errors.NewErrorReporter(c.path, c.source).FormatAll(c.diagnostics)
}

// compile parses and assembles path. A syntax error stops before assembly.
// Link errors leave a usable program, so assembly still runs and its
// diagnostics are reported too, the same as in the language server; the
// compilation fails either way. The returned error is only set when the file
// cannot be read.
func compile(path string, cfg *config.Config) (*compilation, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	c := &compilation{path: path, source: string(source)}

	program, parseErrors := parser.ParseSource(path, c.source)
	for _, pe := range parseErrors {
		c.diagnostics = append(c.diagnostics, pe.CompilerError())
	}
	if len(parseErrors) > 0 {
		c.failed = true
	}
	if program == nil {
		return c, nil
	}

	model, err := abi.Assemble(program, cfg)
	if err != nil {
		var ce errors.CompilerError
		if !stderrors.As(err, &ce) {
			return nil, err
		}
		c.diagnostics = append(c.diagnostics, ce)
		c.failed = true
		return c, nil
	}

	if !c.failed {
		c.model = model
	}
	c.diagnostics = append(c.diagnostics, model.Warnings...)
	log.Infof("compiled %s: %d diagnostics", path, len(c.diagnostics))
	return c, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
