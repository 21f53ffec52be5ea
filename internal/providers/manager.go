package providers

import (
	"fmt"
	"os"
	"strings"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager builds the configured LLM providers. The first provider is the one
// the engine calls; the mock provider is always appended last so offline mode
// is an explicit member of the chain rather than a magic credential value.
type Manager struct {
	llmProviders []NamedLLMProvider
}

func NewManager(providerList string) (*Manager, error) {
	raw := strings.TrimSpace(providerList)
	if raw == "" || strings.EqualFold(raw, "auto") {
		raw = detectProviders()
	}
	m := &Manager{}
	for _, ref := range ParseProviderList(raw) {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	if !m.hasProvider("mock") {
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()})
	}
	return m, nil
}

// detectProviders mirrors credential presence: a Groq key selects Groq, an
// OpenAI key selects OpenAI, and no key at all means offline mode.
func detectProviders() string {
	if os.Getenv("GROQ_API_KEY") != "" {
		return "groq"
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	return "mock"
}

// NewManagerWithProvider wraps an already-built provider, bypassing list
// parsing. Used by tests that need to inject a failing or canned provider.
func NewManagerWithProvider(p LLMProvider) *Manager {
	return &Manager{llmProviders: []NamedLLMProvider{{Ref: ProviderRef{Raw: "custom", Name: "custom"}, Provider: p}}}
}

func (m *Manager) Primary() (LLMProvider, ProviderRef) {
	return m.llmProviders[0].Provider, m.llmProviders[0].Ref
}

func (m *Manager) Offline() bool {
	return strings.EqualFold(m.llmProviders[0].Ref.Name, "mock")
}

func (m *Manager) hasProvider(name string) bool {
	for i := range m.llmProviders {
		if strings.EqualFold(m.llmProviders[i].Ref.Name, name) {
			return true
		}
	}
	return false
}

func buildProvider(ref ProviderRef) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
