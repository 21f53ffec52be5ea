package providers

import "strings"

// ProviderRef is one entry of the STUDYMATE_LLM_PROVIDERS list. Entries are
// separated by "|" and may carry a key alias, e.g. "groq:team2|mock".
type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

func ParseProviderList(raw string) []ProviderRef {
	out := make([]ProviderRef, 0, 2)
	for _, p := range strings.Split(raw, "|") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ref := ProviderRef{Raw: p, Name: p}
		if name, alias, ok := strings.Cut(p, ":"); ok {
			ref.Name = strings.TrimSpace(name)
			ref.KeyAlias = strings.TrimSpace(alias)
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		// No configuration at all means offline mode.
		out = append(out, ProviderRef{Raw: "mock", Name: "mock"})
	}
	return out
}
