package entities

// Hook names accepted in HookConfig.Hooks
const (
	HookInstallDeps = "install-deps"
	HookMinify      = "minify"
)

// HookConfig represents the declarative configuration of the pre-build hooks
type HookConfig struct {
	Minify  MinifyConfig
	Install InstallConfig
	Hooks   []string
}

// MinifyConfig represents the asset minifier configuration
type MinifyConfig struct {
	ResourceDir string   // Relative to the project directory
	Files       []string // Bare filenames, processed in order
}

// InstallConfig represents the dependency installer configuration
type InstallConfig struct {
	Manifest       string // Relative to the project directory
	ExtraArgs      []string
	TimeoutMinutes int
	Keyring        string // Optional public keyring used to check the manifest signature
	Signature      string // Detached signature, defaults to <manifest>.asc
}

// DefaultHookConfig returns the configuration used when no prebuild.yml exists
func DefaultHookConfig() *HookConfig {
	return &HookConfig{
		Minify: MinifyConfig{
			ResourceDir: "html",
			Files:       []string{"OrbitControls.js"},
		},
		Install: InstallConfig{
			Manifest:       "requirements.txt",
			TimeoutMinutes: 30,
		},
		Hooks: []string{HookInstallDeps, HookMinify},
	}
}

// SignaturePath returns the detached signature path relative to the project directory
func (c InstallConfig) SignaturePath() string {
	if c.Signature != "" {
		return c.Signature
	}
	return c.Manifest + ".asc"
}
