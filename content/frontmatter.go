package content

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// ParseFrontMatter splits a content file into its front-matter values and
// body. YAML front-matter is fenced by "---" lines, TOML by "+++" lines.
// A file without front-matter yields an empty map and the whole input as
// body.
func ParseFrontMatter(data []byte) (map[string]any, string, error) {
	fence, fm, body := splitFrontMatter(string(data))
	values := map[string]any{}
	if strings.TrimSpace(fm) == "" {
		return values, body, nil
	}
	switch fence {
	case yamlFence:
		if err := yaml.Unmarshal([]byte(fm), &values); err != nil {
			return nil, "", fmt.Errorf("parse yaml front matter: %w", err)
		}
	case tomlFence:
		if err := toml.Unmarshal([]byte(fm), &values); err != nil {
			return nil, "", fmt.Errorf("parse toml front matter: %w", err)
		}
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, body, nil
}

func splitFrontMatter(input string) (fence, fm, body string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	first := strings.TrimSpace(lines[0])
	if first != yamlFence && first != tomlFence {
		return "", "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == first {
			fm = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return first, fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", "", input
}
