package yaml

import (
	"testing"
)

// FuzzConfigParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzConfigParser -fuzztime=30s
func FuzzConfigParser(f *testing.F) {
	f.Add([]byte(`minify:
  resource_dir: html
  files:
    - OrbitControls.js
`))

	f.Add([]byte(`install:
  manifest: requirements.txt
  extra_args: [--quiet]
  timeout_minutes: 5
hooks: [install-deps, minify]
`))

	f.Add([]byte(""))
	f.Add([]byte("hooks: [minify, minify]"))
	f.Add([]byte("minify: [not, a, map]"))
	f.Add([]byte("\x00\xff"))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := NewConfigParser().Parse(data)
		if err != nil {
			return
		}

		// Anything accepted must satisfy the validator
		if vErr := Validate(cfg); vErr != nil {
			t.Errorf("Parse() accepted config that fails Validate(): %v", vErr)
		}
		if cfg.Install.Manifest == "" {
			t.Error("Parse() accepted config with an empty manifest")
		}
	})
}
