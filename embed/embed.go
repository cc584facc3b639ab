// Package embed provides the commented default configuration written by
// `chime init`. It is embedded at compile time using Go's embed directive.
package embed

import (
	_ "embed"
	"strings"
)

//go:embed chime.yaml
var defaultConfigTemplate string

// GetDefaultConfig returns the default config file with the output directory
// substituted.
func GetDefaultConfig(outputDir string) string {
	if outputDir == "" {
		outputDir = "sounds"
	}
	return strings.ReplaceAll(defaultConfigTemplate, "{{OUTPUT_DIR}}", outputDir)
}
