// Package yaml provides YAML-based hook configuration parsing and loading.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/ochairo/prebuild/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw prebuild.yml structure
type yamlConfig struct {
	Minify  *yamlMinify  `yaml:"minify"`
	Install *yamlInstall `yaml:"install"`
	Hooks   []string     `yaml:"hooks"`
}

type yamlMinify struct {
	ResourceDir string   `yaml:"resource_dir"`
	Files       []string `yaml:"files"`
}

type yamlInstall struct {
	Manifest       string   `yaml:"manifest"`
	ExtraArgs      []string `yaml:"extra_args"`
	TimeoutMinutes int      `yaml:"timeout_minutes"`
	Keyring        string   `yaml:"keyring"`
	Signature      string   `yaml:"signature"`
}

// ConfigParser parses prebuild.yml files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file into a HookConfig entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.HookConfig, error) {
	//nolint:gosec // G304: filePath is the project's hook configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a HookConfig; omitted sections keep their defaults
func (p *ConfigParser) Parse(data []byte) (*entities.HookConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultHookConfig()
	if raw.Minify != nil {
		applyMinify(&cfg.Minify, raw.Minify)
	}
	if raw.Install != nil {
		applyInstall(&cfg.Install, raw.Install)
	}
	if raw.Hooks != nil {
		cfg.Hooks = raw.Hooks
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks a HookConfig for values no hook can run with
func Validate(cfg *entities.HookConfig) error {
	for i, name := range cfg.Minify.Files {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("minify.files[%d] is empty", i)
		}
	}

	if strings.TrimSpace(cfg.Install.Manifest) == "" {
		return fmt.Errorf("install.manifest must not be empty")
	}
	if cfg.Install.TimeoutMinutes < 0 {
		return fmt.Errorf("install.timeout_minutes must not be negative")
	}

	seen := make(map[string]bool, len(cfg.Hooks))
	for _, hook := range cfg.Hooks {
		switch hook {
		case entities.HookInstallDeps, entities.HookMinify:
		default:
			return fmt.Errorf("unknown hook %q (want %s or %s)", hook, entities.HookInstallDeps, entities.HookMinify)
		}
		if seen[hook] {
			return fmt.Errorf("hook %q listed more than once", hook)
		}
		seen[hook] = true
	}

	return nil
}

func applyMinify(dst *entities.MinifyConfig, ym *yamlMinify) {
	if ym.ResourceDir != "" {
		dst.ResourceDir = ym.ResourceDir
	}
	if ym.Files != nil {
		dst.Files = ym.Files
	}
}

func applyInstall(dst *entities.InstallConfig, yi *yamlInstall) {
	if yi.Manifest != "" {
		dst.Manifest = yi.Manifest
	}
	if yi.ExtraArgs != nil {
		dst.ExtraArgs = yi.ExtraArgs
	}
	if yi.TimeoutMinutes != 0 {
		dst.TimeoutMinutes = yi.TimeoutMinutes
	}
	dst.Keyring = yi.Keyring
	dst.Signature = yi.Signature
}
