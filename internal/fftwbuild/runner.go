package fftwbuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is one external build step.
type Command struct {
	Dir  string
	Name string
	Args []string
	// Env is appended to the process environment.
	Env []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes build steps.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as subprocesses. Nil writers discard output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s (in %s): %w", ErrCommand, c, c.Dir, err)
	}
	return nil
}
