package providers

import "testing"

func TestParseProviderListAliases(t *testing.T) {
	refs := ParseProviderList("groq:team2| mock ")
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Name != "groq" || refs[0].KeyAlias != "team2" {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
	if refs[1].Name != "mock" || refs[1].KeyAlias != "" {
		t.Fatalf("unexpected second ref: %+v", refs[1])
	}
}

func TestParseProviderListEmptyFallsBackToMock(t *testing.T) {
	refs := ParseProviderList("  ")
	if len(refs) != 1 || refs[0].Name != "mock" {
		t.Fatalf("expected mock fallback, got %+v", refs)
	}
}
