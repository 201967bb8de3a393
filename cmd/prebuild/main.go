// Package main provides the prebuild CLI, the pre-build hooks of the firmware build.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// streams are the writers a command reports to
type streams struct {
	out    io.Writer
	errOut io.Writer
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := dispatch(ctx, os.Args[1], os.Args[2:], streams{out: os.Stdout, errOut: os.Stderr})
	stop()
	os.Exit(code)
}

func dispatch(ctx context.Context, command string, args []string, s streams) int {
	switch command {
	case "minify":
		return runMinify(ctx, args, s)
	case "install-deps":
		return runInstallDeps(ctx, args, s)
	case "run":
		return runHooks(ctx, args, s)
	case "help", "-h", "--help":
		printUsage(s.out)
		return 0
	default:
		fmt.Fprintf(s.errOut, "Unknown command: %s\n\n", command)
		printUsage(s.errOut)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `prebuild - Pre-build hooks for the firmware build

Usage:
  prebuild <command> [options]

Commands:
  minify        Minify the configured JS assets (never fails the build)
  install-deps  Install Python dependencies from requirements.txt (fails the build on error)
  run           Run the hooks listed in prebuild.yml in order

Environment:
  PROJECT_DIR   Project root (default: current directory)
  PYTHONEXE     Python interpreter (default: python3)

Use "prebuild <command> --help" for more information about a command.`)
}
