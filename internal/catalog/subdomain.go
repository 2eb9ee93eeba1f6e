package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var nonSubdomainRuns = regexp.MustCompile(`[^a-z0-9]+`)

// baseSubdomain derives the collision-free candidate for a project:
// lowercase(username + "-" + name) with every run of characters outside
// [a-z0-9] collapsed into a single hyphen. Inputs made entirely of
// stripped characters would normalize to nothing, so the base falls
// back to a fixed stem to keep every candidate non-empty.
func baseSubdomain(username, name string) string {
	s := strings.ToLower(username + "-" + name)
	s = nonSubdomainRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "site"
	}
	return s
}

// subdomainCandidate returns the candidate for the given probe attempt:
// the base itself for attempt 0, then base-1, base-2, ...
func subdomainCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
