// Package services implements the pre-build hooks on top of gateway interfaces.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ochairo/prebuild/internal/domain/entities"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/ochairo/prebuild/internal/domain/interfaces/gateways"
)

// AssetMinifier writes a minified sibling for each configured web asset.
// It never fails the build: every problem is logged and recorded in the report.
type AssetMinifier struct {
	minifier gateways.Minifier
	logger   interfaces.Logger
}

// NewAssetMinifier creates a new asset minifier service
func NewAssetMinifier(minifier gateways.Minifier, logger interfaces.Logger) *AssetMinifier {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &AssetMinifier{
		minifier: minifier,
		logger:   logger,
	}
}

// MinifyFiles minifies each named file under resourceDir, in list order
func (m *AssetMinifier) MinifyFiles(ctx context.Context, resourceDir string, files []string) *entities.MinifyReport {
	report := &entities.MinifyReport{ResourceDir: resourceDir}
	m.logger.Info("processing JS assets", interfaces.F("dir", resourceDir), interfaces.F("count", len(files)))

	for _, name := range files {
		if ctx.Err() != nil {
			m.logger.Warn("minification interrupted", interfaces.F("error", ctx.Err()))
			break
		}

		if !validAssetName(name) {
			err := fmt.Errorf("asset name must be a bare filename: %q", name)
			m.logger.Error("invalid asset name", interfaces.F("file", name), interfaces.F("error", err))
			report.Add(entities.MinifyResult{
				Name:   name,
				Status: entities.MinifyStatusInvalidName,
				Error:  err,
			})
			continue
		}

		inputPath := filepath.Join(resourceDir, name)
		if _, err := os.Stat(inputPath); err != nil {
			result := entities.MinifyResult{Name: name, InputPath: inputPath, Error: err}
			if errors.Is(err, fs.ErrNotExist) {
				m.logger.Warn("file not found", interfaces.F("file", inputPath))
				result.Status = entities.MinifyStatusNotFound
			} else {
				m.logger.Error("failed to stat file", interfaces.F("file", inputPath), interfaces.F("error", err))
				result.Status = entities.MinifyStatusReadError
			}
			report.Add(result)
			continue
		}

		report.Add(m.MinifyFile(ctx, inputPath))
	}

	return report
}

// MinifyFile minifies a single existing file and writes <name>.min<ext> next to it
func (m *AssetMinifier) MinifyFile(_ context.Context, inputPath string) entities.MinifyResult {
	result := entities.MinifyResult{
		Name:      filepath.Base(inputPath),
		InputPath: inputPath,
	}

	//nolint:gosec // G304: inputPath comes from the hook configuration
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return m.fail(result, entities.MinifyStatusReadError, fmt.Errorf("failed to read %s: %w", inputPath, err))
	}
	if !utf8.Valid(data) {
		return m.fail(result, entities.MinifyStatusReadError, fmt.Errorf("failed to read %s: content is not valid UTF-8", inputPath))
	}
	result.InputSize = len(data)

	minified, err := m.minifier.Minify(string(data))
	if err != nil {
		return m.fail(result, entities.MinifyStatusMinifyError, fmt.Errorf("failed to minify %s: %w", inputPath, err))
	}

	result.OutputPath = OutputPath(inputPath)
	//nolint:gosec // G306: minified assets are served by the device web UI and must stay world-readable
	if err := os.WriteFile(result.OutputPath, []byte(minified), 0o644); err != nil {
		return m.fail(result, entities.MinifyStatusWriteError, fmt.Errorf("failed to write %s: %w", result.OutputPath, err))
	}

	result.Status = entities.MinifyStatusMinified
	result.OutputSize = len(minified)
	m.logger.Info("minified file saved",
		interfaces.F("file", result.OutputPath),
		interfaces.F("bytes_in", result.InputSize),
		interfaces.F("bytes_out", result.OutputSize),
	)
	return result
}

func (m *AssetMinifier) fail(result entities.MinifyResult, status entities.MinifyStatus, err error) entities.MinifyResult {
	result.Status = status
	result.Error = err
	m.logger.Error("minification skipped", interfaces.F("file", result.InputPath), interfaces.F("error", err))
	return result
}

// OutputPath inserts ".min" before the extension: html/app.js -> html/app.min.js
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".min" + ext
}

// IsMinifiedName reports whether a filename already carries the .min marker
func IsMinifiedName(name string) bool {
	ext := filepath.Ext(name)
	return strings.HasSuffix(strings.TrimSuffix(name, ext), ".min")
}

func validAssetName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
