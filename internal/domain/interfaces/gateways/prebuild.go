// Package gateways defines interfaces for the external tools the hooks drive.
package gateways

import (
	"context"
	"io"
	"time"
)

// Minifier transforms JavaScript source into a smaller equivalent form
type Minifier interface {
	Minify(source string) (string, error)
}

// CommandSpec describes an external command to run without a shell
type CommandSpec struct {
	Name        string
	Args        []string
	WorkingDir  string
	Env         map[string]string
	Timeout     time.Duration
	Stdout      io.Writer // Mirrors the child's stdout when set
	Stderr      io.Writer // Mirrors the child's stderr when set
	Description string
}

// CommandResult contains the outcome of a command run
type CommandResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// CommandRunner executes external commands
type CommandRunner interface {
	RunCommand(ctx context.Context, spec CommandSpec) *CommandResult
}

// SignatureVerifier checks detached OpenPGP signatures of local files
type SignatureVerifier interface {
	VerifyFileSignature(keyringPath, filePath, sigPath string) error
}
