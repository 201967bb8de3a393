// Package buildenv resolves the build environment the hooks run in.
package buildenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/ochairo/prebuild/internal/domain/entities"
)

// Environment keys, named as the SCons environment of PlatformIO exposes them
const (
	KeyProjectDir = "PROJECT_DIR"
	KeyPythonExe  = "PYTHONEXE"
)

// DefaultPythonExe is used when neither a flag nor the environment names an interpreter
const DefaultPythonExe = "python3"

// Loader builds an entities.BuildEnvironment.
// Precedence: explicit overrides, process environment, .env files, defaults.
type Loader struct {
	lookupEnv   func(string) (string, bool)
	getwd       func() (string, error)
	dotenvFiles []string
}

// NewLoader creates a loader reading the process environment and the given .env files.
// With no files, ".env" in the working directory is used when present.
func NewLoader(dotenvFiles ...string) *Loader {
	return &Loader{
		lookupEnv:   os.LookupEnv,
		getwd:       os.Getwd,
		dotenvFiles: dotenvFiles,
	}
}

// Load resolves the environment; non-empty fields of overrides win
func (l *Loader) Load(overrides entities.BuildEnvironment) (entities.BuildEnvironment, error) {
	fileEnv, err := l.readDotenv()
	if err != nil {
		return entities.BuildEnvironment{}, err
	}

	lookup := func(key string) string {
		if v, ok := l.lookupEnv(key); ok && v != "" {
			return v
		}
		return fileEnv[key]
	}

	env := entities.BuildEnvironment{
		ProjectDir: firstNonEmpty(overrides.ProjectDir, lookup(KeyProjectDir)),
		PythonExe:  firstNonEmpty(overrides.PythonExe, lookup(KeyPythonExe), DefaultPythonExe),
	}

	if env.ProjectDir == "" {
		wd, err := l.getwd()
		if err != nil {
			return entities.BuildEnvironment{}, fmt.Errorf("failed to determine project directory: %w", err)
		}
		env.ProjectDir = wd
	}

	abs, err := filepath.Abs(env.ProjectDir)
	if err != nil {
		return entities.BuildEnvironment{}, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	env.ProjectDir = abs

	info, err := os.Stat(env.ProjectDir)
	if err != nil {
		return entities.BuildEnvironment{}, fmt.Errorf("project directory %s: %w", env.ProjectDir, err)
	}
	if !info.IsDir() {
		return entities.BuildEnvironment{}, fmt.Errorf("project directory %s is not a directory", env.ProjectDir)
	}

	return env, nil
}

func (l *Loader) readDotenv() (map[string]string, error) {
	files := l.dotenvFiles
	explicit := len(files) > 0
	if !explicit {
		if _, err := os.Stat(".env"); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return map[string]string{}, nil
			}
			return nil, fmt.Errorf("failed to stat .env: %w", err)
		}
		files = []string{".env"}
	}

	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files %v: %w", files, err)
	}
	return values, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
