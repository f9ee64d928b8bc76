package config

import (
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent renders the default preference file with every
// value commented out.
func GenerateConfigContent() (string, error) {
	data, err := gotoml.Marshal(Defaults())
	if err != nil {
		return "", err
	}
	header := "# makecatalogs preferences\n# Uncomment a value to override the built-in default.\n\n"
	return header + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
