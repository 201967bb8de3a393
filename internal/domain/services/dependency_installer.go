package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/prebuild/internal/domain/entities"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/ochairo/prebuild/internal/domain/interfaces/gateways"
)

// InstallError is returned when the dependency installer cannot complete.
// ExitCode is the package manager's exit status, or -1 if it never ran to completion.
type InstallError struct {
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("dependency installation failed (exit %d): %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("dependency installation failed: %v", e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// DependencyInstaller installs the Python packages listed in the project's manifest.
// Any failure is returned to the caller, which must abort the build.
type DependencyInstaller struct {
	runner   gateways.CommandRunner
	verifier gateways.SignatureVerifier
	logger   interfaces.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// DependencyInstallerOption configures a DependencyInstaller
type DependencyInstallerOption func(*DependencyInstaller)

// WithSignatureVerifier enables manifest signature checks when a keyring is configured
func WithSignatureVerifier(v gateways.SignatureVerifier) DependencyInstallerOption {
	return func(d *DependencyInstaller) {
		d.verifier = v
	}
}

// WithOutput mirrors the package manager's output to the given writers
func WithOutput(stdout, stderr io.Writer) DependencyInstallerOption {
	return func(d *DependencyInstaller) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// NewDependencyInstaller creates a new dependency installer service
func NewDependencyInstaller(runner gateways.CommandRunner, logger interfaces.Logger, opts ...DependencyInstallerOption) *DependencyInstaller {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	d := &DependencyInstaller{
		runner: runner,
		logger: logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ManifestPath returns the absolute location of the requirements manifest
func ManifestPath(env entities.BuildEnvironment, cfg entities.InstallConfig) string {
	if filepath.IsAbs(cfg.Manifest) {
		return cfg.Manifest
	}
	return filepath.Join(env.ProjectDir, cfg.Manifest)
}

// Command returns the argv used to install the manifest's packages
func (d *DependencyInstaller) Command(env entities.BuildEnvironment, cfg entities.InstallConfig) []string {
	argv := []string{env.PythonExe, "-m", "pip", "install", "-r", ManifestPath(env, cfg)}
	return append(argv, cfg.ExtraArgs...)
}

// Install runs "<python> -m pip install -r <manifest>" and returns an *InstallError on any failure
func (d *DependencyInstaller) Install(ctx context.Context, env entities.BuildEnvironment, cfg entities.InstallConfig) error {
	if env.PythonExe == "" {
		return &InstallError{ExitCode: -1, Err: errors.New("python interpreter path is not set")}
	}

	manifest := ManifestPath(env, cfg)
	if _, err := os.Stat(manifest); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InstallError{ExitCode: -1, Err: fmt.Errorf("requirements manifest not found: %s", manifest)}
		}
		return &InstallError{ExitCode: -1, Err: fmt.Errorf("failed to stat requirements manifest: %w", err)}
	}

	if cfg.Keyring != "" {
		if err := d.verifyManifest(env, cfg, manifest); err != nil {
			return &InstallError{ExitCode: -1, Err: err}
		}
	}

	argv := d.Command(env, cfg)
	d.logger.Info("installing Python dependencies", interfaces.F("manifest", manifest), interfaces.F("python", env.PythonExe))
	d.logger.Debug("running package manager", interfaces.F("argv", argv))

	var timeout time.Duration
	if cfg.TimeoutMinutes > 0 {
		timeout = time.Duration(cfg.TimeoutMinutes) * time.Minute
	}

	result := d.runner.RunCommand(ctx, gateways.CommandSpec{
		Name:        argv[0],
		Args:        argv[1:],
		WorkingDir:  env.ProjectDir,
		Timeout:     timeout,
		Stdout:      d.stdout,
		Stderr:      d.stderr,
		Description: "pip install",
	})

	if !result.Success {
		err := result.Error
		if err == nil {
			err = errors.New("package manager reported failure")
		}
		return &InstallError{ExitCode: result.ExitCode, Err: err}
	}

	d.logger.Info("dependencies installed", interfaces.F("duration", result.Duration.Round(time.Millisecond)))
	return nil
}

func (d *DependencyInstaller) verifyManifest(env entities.BuildEnvironment, cfg entities.InstallConfig, manifest string) error {
	if d.verifier == nil {
		return errors.New("manifest keyring configured but no signature verifier available")
	}

	keyring := resolve(env.ProjectDir, cfg.Keyring)
	sigPath := resolve(env.ProjectDir, cfg.SignaturePath())

	if err := d.verifier.VerifyFileSignature(keyring, manifest, sigPath); err != nil {
		return fmt.Errorf("requirements manifest signature check failed: %w", err)
	}

	d.logger.Info("requirements manifest signature verified", interfaces.F("signature", sigPath))
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
