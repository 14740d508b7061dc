package main

import "strings"

// parseInput splits a typed line into an action code and its parameter.
// Everything after the code is one parameter, so names may contain spaces:
// "1 3", "take Brass Key", "6 Lady Ashford".
func parseInput(line string) (string, []string) {
	code, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return code, nil
	}
	return code, []string{rest}
}
