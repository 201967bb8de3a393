package main

import (
	"context"
	"fmt"

	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/spf13/pflag"
)

func runHooks(ctx context.Context, args []string, s streams) int {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	var common commonFlags
	common.register(fs, true)

	fs.Usage = func() {
		fmt.Fprintf(s.errOut, `Usage: prebuild run [options]

Run the hooks listed under "hooks" in prebuild.yml (default: install-deps, minify).
Stops with a non-zero status if dependency installation fails.

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

	result, err := app.orch.RunHooks(ctx, app.env, app.cfg)
	if err != nil {
		app.logger.Error("build aborted", interfaces.F("error", err))
		return exitCode(err)
	}

	fmt.Fprintln(s.out, result.GetSummary())
	return 0
}
