package gateways

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// EsbuildMinifier minifies JavaScript with esbuild's transform API
type EsbuildMinifier struct {
	options api.TransformOptions
}

// NewEsbuildMinifier creates a minifier that strips whitespace and comments
// and shortens syntax. Identifiers are left alone so re-minifying is stable.
func NewEsbuildMinifier() *EsbuildMinifier {
	return &EsbuildMinifier{
		options: api.TransformOptions{
			Loader:           api.LoaderJS,
			MinifyWhitespace: true,
			MinifySyntax:     true,
			LegalComments:    api.LegalCommentsNone,
			Charset:          api.CharsetUTF8,
			LogLevel:         api.LogLevelSilent,
		},
	}
}

// Minify returns the minified form of source, or the esbuild diagnostics as an error
func (m *EsbuildMinifier) Minify(source string) (string, error) {
	result := api.Transform(source, m.options)
	if len(result.Errors) > 0 {
		return "", transformError(result.Errors)
	}
	return string(result.Code), nil
}

func transformError(msgs []api.Message) error {
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Location != nil {
			lines = append(lines, fmt.Sprintf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text))
		} else {
			lines = append(lines, msg.Text)
		}
	}
	return errors.New("esbuild: " + strings.Join(lines, "; "))
}
