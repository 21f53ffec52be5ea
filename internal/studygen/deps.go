package studygen

import (
	"regexp"
	"strings"

	"studymate/internal/models"
)

var ws = regexp.MustCompile(`\s+`)

func canonicalTitle(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return ws.ReplaceAllString(s, " ")
}

// UnknownDependencyTitles reports dependency endpoints that do not match any
// concept title. The generated content is stored regardless; unknown titles
// are surfaced for logging only.
func UnknownDependencyTitles(c models.GeneratedContent) []string {
	known := make(map[string]struct{}, len(c.Concepts))
	for _, concept := range c.Concepts {
		known[canonicalTitle(concept.Title)] = struct{}{}
	}
	seen := map[string]struct{}{}
	unknown := make([]string, 0)
	for _, pair := range c.Dependencies {
		for _, title := range pair {
			key := canonicalTitle(title)
			if key == "" {
				continue
			}
			if _, ok := known[key]; ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			unknown = append(unknown, title)
		}
	}
	return unknown
}
