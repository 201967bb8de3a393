// Package gateways adapts external tools to the domain gateway interfaces.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ochairo/prebuild/internal/domain/interfaces/gateways"
)

// CommandExecutor runs external commands directly, without a shell
type CommandExecutor struct {
	defaultTimeout time.Duration
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		defaultTimeout: 30 * time.Minute,
	}
}

// RunCommand runs spec.Name with spec.Args and waits for it to exit
func (ce *CommandExecutor) RunCommand(ctx context.Context, spec gateways.CommandSpec) *gateways.CommandResult {
	startTime := time.Now()
	result := &gateways.CommandResult{}

	if spec.Name == "" {
		result.ExitCode = -1
		result.Error = errors.New("command name is empty")
		return result
	}

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = ce.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: the interpreter path and arguments come from the build environment
	cmd := exec.CommandContext(execCtx, spec.Name, spec.Args...)
	// Grandchildren holding the output pipes must not outlive the timeout by much
	cmd.WaitDelay = 5 * time.Second

	if spec.WorkingDir != "" {
		cmd.Dir = spec.WorkingDir
	}

	if len(spec.Env) > 0 {
		env := os.Environ()
		for key, value := range spec.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}

	// Output is always captured; it is also mirrored when the caller asks for it
	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeWriter(&stdout, spec.Stdout)
	cmd.Stderr = teeWriter(&stderr, spec.Stderr)

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			result.ExitCode = -1
			result.Error = fmt.Errorf("%s interrupted: %w", describe(spec), ctx.Err())
		case errors.Is(execCtx.Err(), context.DeadlineExceeded):
			result.Error = fmt.Errorf("%s timed out after %v", describe(spec), timeout)
			result.ExitCode = -1
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			result.Error = fmt.Errorf("%s exited with status %d: %w", describe(spec), result.ExitCode, err)
		default:
			result.ExitCode = -1
			result.Error = fmt.Errorf("failed to run %s: %w", describe(spec), err)
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

func teeWriter(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

func describe(spec gateways.CommandSpec) string {
	if spec.Description != "" {
		return spec.Description
	}
	return spec.Name
}
