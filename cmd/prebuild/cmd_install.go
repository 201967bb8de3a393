package main

import (
	"context"
	"fmt"

	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/spf13/pflag"
)

func runInstallDeps(ctx context.Context, args []string, s streams) int {
	fs := pflag.NewFlagSet("install-deps", pflag.ContinueOnError)
	var common commonFlags
	common.register(fs, true)
	requirements := fs.StringP("requirements", "r", "", "Requirements manifest relative to the project, overriding install.manifest")

	fs.Usage = func() {
		fmt.Fprintf(s.errOut, `Usage: prebuild install-deps [options]

Run "<python> -m pip install -r <project-dir>/requirements.txt".
Any failure exits non-zero so the build stops.

Examples:
  prebuild install-deps
  PYTHONEXE=$HOME/.platformio/penv/bin/python prebuild install-deps
  prebuild install-deps --python .venv/bin/python --requirements tools/requirements.txt

Options:
`)
		fs.PrintDefaults()
	}

	if done, code := parseFlags(fs, args, s); done {
		return code
	}

	app, err := newHookApp(ctx, common, s)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return 1
	}

	if *requirements != "" {
		app.cfg.Install.Manifest = *requirements
	}

	if err := app.orch.RunInstall(ctx, app.env, app.cfg); err != nil {
		app.logger.Error("build aborted", interfaces.F("error", err))
		return exitCode(err)
	}
	return 0
}
