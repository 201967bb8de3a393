// Package entities holds the domain types shared by the pre-build hooks.
package entities

// BuildEnvironment is the part of the orchestrator's environment the hooks read.
// It is built once by the integration layer and never mutated afterwards.
type BuildEnvironment struct {
	ProjectDir string // PROJECT_DIR
	PythonExe  string // PYTHONEXE
}
