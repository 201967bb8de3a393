package entities

import "fmt"

// MinifyStatus is the outcome of minifying one asset
type MinifyStatus string

// Minify statuses
const (
	MinifyStatusMinified    MinifyStatus = "minified"
	MinifyStatusNotFound    MinifyStatus = "not_found"
	MinifyStatusInvalidName MinifyStatus = "invalid_name"
	MinifyStatusReadError   MinifyStatus = "read_error"
	MinifyStatusMinifyError MinifyStatus = "minify_error"
	MinifyStatusWriteError  MinifyStatus = "write_error"
)

// MinifyResult represents the outcome for a single asset
type MinifyResult struct {
	Name       string
	InputPath  string
	OutputPath string
	Status     MinifyStatus
	InputSize  int
	OutputSize int
	Error      error
}

// Succeeded reports whether the minified file was written
func (r MinifyResult) Succeeded() bool {
	return r.Status == MinifyStatusMinified
}

// MinifyReport collects the results of one minifier run, in file list order
type MinifyReport struct {
	ResourceDir string
	Results     []MinifyResult
}

// Add appends a result to the report
func (r *MinifyReport) Add(result MinifyResult) {
	r.Results = append(r.Results, result)
}

// Counts returns the number of successful and failed results
func (r *MinifyReport) Counts() (succeeded, failed int) {
	for _, res := range r.Results {
		if res.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Summary returns a one-line description of the run
func (r *MinifyReport) Summary() string {
	ok, failed := r.Counts()
	return fmt.Sprintf("%d/%d assets minified, %d skipped", ok, len(r.Results), failed)
}
