package util

import "testing"

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy"
	if out := SanitizeText(in); out != "abcd\n\txy" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextTrims(t *testing.T) {
	if out := SanitizeText("  padded  "); out != "padded" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextEmpty(t *testing.T) {
	if out := SanitizeText(""); out != "" {
		t.Fatalf("expected empty, got %q", out)
	}
}
