package narrative

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// CleanNames turns a model's list reply into names. It splits on lines,
// strips numbering ("1. ", "2) "), bullets and quotes, drops blanks, and
// title-cases what is left.
func CleanNames(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(line)
		name = stripNumbering(name)
		name = strings.TrimLeft(name, "-*• ")
		name = strings.Trim(name, `'"`)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, titleCaser.String(name))
	}
	return names
}

func stripNumbering(s string) string {
	i := 0
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i == 0 || i >= len(s) {
		return s
	}
	if s[i] == '.' || s[i] == ')' {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// ValidateNames checks the GenerateNames contract: exactly count unique,
// non-empty names.
func ValidateNames(names []string, count int) error {
	if len(names) != count {
		return fmt.Errorf("expected %d names, got %d", count, len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("empty name in list")
		}
		key := strings.ToLower(n)
		if seen[key] {
			return fmt.Errorf("duplicate name %q", n)
		}
		seen[key] = true
	}
	return nil
}
