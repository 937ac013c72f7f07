// ABOUTME: YAML frontmatter rendering and parsing for markdown entry files.
// ABOUTME: Frontmatter sits between two "---" lines at the top of the file.
package storage

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fmDelim = "---\n"

// renderFrontmatter serializes fm as YAML frontmatter followed by body.
// A single trailing newline is appended so files end cleanly; parseFrontmatter
// strips it again.
func renderFrontmatter(fm any, body string) (string, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmDelim)
	sb.Write(data)
	sb.WriteString(fmDelim)
	sb.WriteString(body)
	sb.WriteString("\n")
	return sb.String(), nil
}

// parseFrontmatter splits content into its YAML frontmatter and body.
func parseFrontmatter(content string) (string, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fmDelim) {
		return "", "", fmt.Errorf("missing frontmatter")
	}

	rest := content[len(fmDelim):]
	end := strings.Index(rest, "\n"+fmDelim)
	if end < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter")
	}

	yamlStr := rest[:end+1]
	body := strings.TrimSuffix(rest[end+1+len(fmDelim):], "\n")
	return yamlStr, body, nil
}
