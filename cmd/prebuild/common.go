package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ochairo/prebuild/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/prebuild/internal/domain-orchestrators"
	"github.com/ochairo/prebuild/internal/domain/entities"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/ochairo/prebuild/internal/domain/interfaces/repositories"
	"github.com/ochairo/prebuild/internal/domain/services"
	"github.com/ochairo/prebuild/internal/external-adapters/buildenv"
	"github.com/ochairo/prebuild/internal/external-adapters/logging"
	"github.com/ochairo/prebuild/internal/external-adapters/yaml"
	"github.com/spf13/pflag"
)

// commonFlags are shared by every hook command
type commonFlags struct {
	projectDir string
	python     string
	configPath string
	envFiles   []string
	verbose    bool
}

func (c *commonFlags) register(fs *pflag.FlagSet, withPython bool) {
	fs.StringVarP(&c.projectDir, "project-dir", "d", "", "Project root (overrides PROJECT_DIR)")
	if withPython {
		fs.StringVarP(&c.python, "python", "p", "", "Python interpreter (overrides PYTHONEXE)")
	}
	fs.StringVarP(&c.configPath, "config", "c", "", "Hook configuration file (default: <project-dir>/prebuild.yml)")
	fs.StringSliceVar(&c.envFiles, "env-file", nil, "Read PROJECT_DIR/PYTHONEXE from these .env files (default: ./.env if present)")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
}

// hookApp holds everything a hook command needs, wired once per invocation
type hookApp struct {
	env      entities.BuildEnvironment
	cfg      *entities.HookConfig
	logger   *logging.Logger
	minifier *services.AssetMinifier
	orch     *orchestrators.PrebuildOrchestrator
}

func newHookApp(ctx context.Context, flags commonFlags, s streams) (*hookApp, error) {
	logger := newLogger(s, flags.verbose)

	env, err := buildenv.NewLoader(flags.envFiles...).Load(entities.BuildEnvironment{
		ProjectDir: flags.projectDir,
		PythonExe:  flags.python,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load build environment: %w", err)
	}

	var configRepo repositories.ConfigRepository = yaml.NewConfigRepository(flags.configPath)
	cfg, err := configRepo.LoadConfig(ctx, env.ProjectDir)
	if err != nil {
		return nil, err
	}

	minifier := services.NewAssetMinifier(gateways.NewEsbuildMinifier(), logger)
	installer := services.NewDependencyInstaller(
		gateways.NewCommandExecutor(),
		logger,
		services.WithSignatureVerifier(gateways.NewSignatureVerifier()),
		services.WithOutput(s.out, s.errOut),
	)

	logger.Debug("build environment", interfaces.F("project_dir", env.ProjectDir), interfaces.F("python", env.PythonExe))

	return &hookApp{
		env:      env,
		cfg:      cfg,
		logger:   logger,
		minifier: minifier,
		orch:     orchestrators.NewPrebuildOrchestrator(minifier, installer, logger),
	}, nil
}

func newLogger(s streams, verbose bool) *logging.Logger {
	if s.out == os.Stdout {
		return logging.NewConsole(verbose)
	}
	return logging.New(s.out, logging.Options{Verbose: verbose, NoColor: true, NoTime: true})
}

// parseFlags parses args; done is true when the command should exit with code
func parseFlags(fs *pflag.FlagSet, args []string, s streams) (done bool, code int) {
	fs.SetOutput(s.errOut)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, 0
		}
		return true, 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(s.errOut, "Error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return true, 2
	}
	return false, 0
}

// exitCode maps a fatal hook error to the process exit status
func exitCode(err error) int {
	var installErr *services.InstallError
	if errors.As(err, &installErr) && installErr.ExitCode > 0 {
		return installErr.ExitCode
	}
	return 1
}
