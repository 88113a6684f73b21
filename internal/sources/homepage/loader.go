// Package homepage imports bookmarks from a Homepage dashboard
// bookmarks.yaml file.
package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Load reads and parses a bookmarks.yaml file.
func Load(path string) (BookmarksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	return Parse(data)
}

// Parse decodes bookmarks.yaml content.
func Parse(data []byte) (BookmarksConfig, error) {
	// Strip Homepage template variables ({{HOMEPAGE_VAR_...}})
	data = stripTemplateVariables(data)

	var config BookmarksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}
	return config, nil
}

// stripTemplateVariables replaces Homepage template variables with an empty
// string. Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
