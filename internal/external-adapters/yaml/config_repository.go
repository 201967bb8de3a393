package yaml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/prebuild/internal/domain/entities"
)

// DefaultConfigFile is looked up in the project directory
const DefaultConfigFile = "prebuild.yml"

// ConfigRepository implements repositories.ConfigRepository using a YAML file
type ConfigRepository struct {
	configPath string
	parser     *ConfigParser
}

// NewConfigRepository creates a repository reading configPath.
// A relative path is resolved against the project directory; empty means prebuild.yml.
func NewConfigRepository(configPath string) *ConfigRepository {
	return &ConfigRepository{
		configPath: configPath,
		parser:     NewConfigParser(),
	}
}

// LoadConfig returns the project's hook configuration.
// A missing default file yields the defaults; a missing explicit file is an error.
func (r *ConfigRepository) LoadConfig(_ context.Context, projectDir string) (*entities.HookConfig, error) {
	explicit := r.configPath != ""
	path := r.configPath
	if !explicit {
		path = DefaultConfigFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to access config %s: %w", path, err)
		}
		if !explicit {
			return entities.DefaultHookConfig(), nil
		}
		return nil, fmt.Errorf("config not found: %w", err)
	}

	cfg, err := r.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
