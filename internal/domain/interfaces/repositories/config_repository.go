// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/prebuild/internal/domain/entities"
)

// ConfigRepository defines the interface for loading hook configuration
type ConfigRepository interface {
	// LoadConfig returns the hook configuration for a project, falling back to defaults
	LoadConfig(ctx context.Context, projectDir string) (*entities.HookConfig, error)
}
