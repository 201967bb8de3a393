package main

import (
	"context"
	"fmt"

	orchestrators "github.com/ochairo/prebuild/internal/domain-orchestrators"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/ochairo/prebuild/internal/external-adapters/watch"
	"github.com/spf13/pflag"
)

func runMinify(ctx context.Context, args []string, s streams) int {
	fs := pflag.NewFlagSet("minify", pflag.ContinueOnError)
	var common commonFlags
	common.register(fs, false)
	var (
		files       = fs.StringSlice("files", nil, "Assets to minify, overriding minify.files (bare filenames)")
		resourceDir = fs.String("resource-dir", "", "Asset directory relative to the project, overriding minify.resource_dir")
		watchMode   = fs.BoolP("watch", "w", false, "Keep running and re-minify assets when they change")
	)

	fs.Usage = func() {
		fmt.Fprintf(s.errOut, `Usage: prebuild minify [options]

Write <name>.min.js next to each configured asset in <project-dir>/html.
Missing or broken assets are reported and skipped; the exit status is always 0.

Examples:
  prebuild minify
  prebuild minify --files OrbitControls.js,three.js
  prebuild minify --watch

Options:
`)
		fs.PrintDefaults()
	}

	if done, code := parseFlags(fs, args, s); done {
		return code
	}

	app, err := newHookApp(ctx, common, s)
	if err != nil {
		// Minification never blocks the build, not even on a broken setup
		fmt.Fprintf(s.errOut, "Warning: skipping minification: %v\n", err)
		return 0
	}

	if fs.Changed("files") {
		app.cfg.Minify.Files = *files
	}
	if *resourceDir != "" {
		app.cfg.Minify.ResourceDir = *resourceDir
	}

	app.orch.RunMinify(ctx, app.env, app.cfg)

	if !*watchMode {
		return 0
	}

	dir := orchestrators.ResourceDir(app.env, app.cfg.Minify)
	watcher, err := watch.NewWatcher(dir, app.cfg.Minify.Files, func(ctx context.Context, path string) {
		app.minifier.MinifyFile(ctx, path)
	}, app.logger)
	if err != nil {
		app.logger.Error("cannot watch assets", interfaces.F("error", err))
		return 0
	}
	if err := watcher.Run(ctx); err != nil {
		app.logger.Error("watch stopped", interfaces.F("error", err))
	}
	return 0
}
