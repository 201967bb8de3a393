// Package orchestrators coordinates the pre-build hooks.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/prebuild/internal/domain/entities"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
)

// AssetMinifier interface for minifying the configured web assets
type AssetMinifier interface {
	MinifyFiles(ctx context.Context, resourceDir string, files []string) *entities.MinifyReport
}

// DependencyInstaller interface for installing the requirements manifest
type DependencyInstaller interface {
	Install(ctx context.Context, env entities.BuildEnvironment, cfg entities.InstallConfig) error
}

// PrebuildOrchestrator runs the hooks with their error policies:
// minification is best-effort, dependency installation is fail-fast.
type PrebuildOrchestrator struct {
	minifier  AssetMinifier
	installer DependencyInstaller
	logger    interfaces.Logger
}

// NewPrebuildOrchestrator creates a new pre-build orchestrator
func NewPrebuildOrchestrator(minifier AssetMinifier, installer DependencyInstaller, logger interfaces.Logger) *PrebuildOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PrebuildOrchestrator{
		minifier:  minifier,
		installer: installer,
		logger:    logger,
	}
}

// PrebuildResult contains the result of a hook run
type PrebuildResult struct {
	HooksRun        []string
	MinifyReport    *entities.MinifyReport
	MinifyDuration  time.Duration
	InstallDuration time.Duration
	TotalDuration   time.Duration
	Success         bool
	Error           error
}

// ResourceDir returns the absolute asset directory for a project
func ResourceDir(env entities.BuildEnvironment, cfg entities.MinifyConfig) string {
	if filepath.IsAbs(cfg.ResourceDir) {
		return cfg.ResourceDir
	}
	return filepath.Join(env.ProjectDir, cfg.ResourceDir)
}

// RunMinify minifies the configured assets; it never returns an error
func (o *PrebuildOrchestrator) RunMinify(ctx context.Context, env entities.BuildEnvironment, cfg *entities.HookConfig) *entities.MinifyReport {
	report := o.minifier.MinifyFiles(ctx, ResourceDir(env, cfg.Minify), cfg.Minify.Files)
	o.logger.Info(report.Summary())
	return report
}

// RunInstall installs the project's Python dependencies; any error must abort the build
func (o *PrebuildOrchestrator) RunInstall(ctx context.Context, env entities.BuildEnvironment, cfg *entities.HookConfig) error {
	if err := o.installer.Install(ctx, env, cfg.Install); err != nil {
		return fmt.Errorf("%s hook failed: %w", entities.HookInstallDeps, err)
	}
	return nil
}

// RunHooks runs cfg.Hooks in order and stops at the first fatal error
func (o *PrebuildOrchestrator) RunHooks(ctx context.Context, env entities.BuildEnvironment, cfg *entities.HookConfig) (*PrebuildResult, error) {
	startTime := time.Now()
	result := &PrebuildResult{}

	for _, hook := range cfg.Hooks {
		if err := ctx.Err(); err != nil {
			result.Error = fmt.Errorf("pre-build interrupted: %w", err)
			return result, result.Error
		}

		o.logger.Info("running hook", interfaces.F("hook", hook))
		hookStart := time.Now()

		switch hook {
		case entities.HookMinify:
			result.MinifyReport = o.RunMinify(ctx, env, cfg)
			result.MinifyDuration = time.Since(hookStart)
		case entities.HookInstallDeps:
			err := o.RunInstall(ctx, env, cfg)
			result.InstallDuration = time.Since(hookStart)
			if err != nil {
				result.HooksRun = append(result.HooksRun, hook)
				result.TotalDuration = time.Since(startTime)
				result.Error = err
				return result, err
			}
		default:
			result.Error = fmt.Errorf("unknown hook %q", hook)
			return result, result.Error
		}

		result.HooksRun = append(result.HooksRun, hook)
	}

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetSummary returns a human-readable summary of the run
func (r *PrebuildResult) GetSummary() string {
	if !r.Success {
		return fmt.Sprintf("Pre-build failed: %v", r.Error)
	}

	lines := []string{fmt.Sprintf("Pre-build complete: %s", strings.Join(r.HooksRun, ", "))}
	if r.InstallDuration > 0 {
		lines = append(lines, fmt.Sprintf("Install: %v", r.InstallDuration.Round(time.Millisecond)))
	}
	if r.MinifyReport != nil {
		lines = append(lines, fmt.Sprintf("Minify: %s (%v)", r.MinifyReport.Summary(), r.MinifyDuration.Round(time.Millisecond)))
	}
	lines = append(lines, fmt.Sprintf("Total: %v", r.TotalDuration.Round(time.Millisecond)))
	return strings.Join(lines, "\n")
}
