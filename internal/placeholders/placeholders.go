// Package placeholders handles the {variable} tokens embedded in prompt
// text: extraction for display and substitution for rendering.
package placeholders

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// variableRegex matches {variable} tokens in prompt text.
var variableRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Vars returns the unique variable names in s, in order of first appearance.
func Vars(s string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range variableRegex.FindAllStringSubmatch(s, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Render substitutes variables with values. Every variable in s must have a
// value; unknown extra values are ignored.
func Render(s string, values map[string]string) (string, error) {
	var missing []string
	out := variableRegex.ReplaceAllStringFunc(s, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := values[name]
		if !ok {
			missing = append(missing, name)
			return token
		}
		return value
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("missing values for: %s", strings.Join(dedupe(missing), ", "))
	}
	return out, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
