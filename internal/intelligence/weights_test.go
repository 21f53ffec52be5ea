package intelligence

import (
	"strings"
	"testing"
)

func TestCalculateExamWeightsShortTextEmpty(t *testing.T) {
	for _, text := range []string{"", "tiny", strings.Repeat("x", 49)} {
		if got := CalculateExamWeights(text); len(got) != 0 {
			t.Fatalf("expected empty map for %q, got %v", text, got)
		}
	}
}

func TestCalculateExamWeightsNormalized(t *testing.T) {
	text := "Photosynthesis Basics\n" +
		"Photosynthesis converts light energy into chemical energy inside chloroplasts. " +
		"The light reactions split water and the Calvin cycle fixes carbon dioxide. " +
		"Photosynthesis efficiency depends on light intensity and temperature."
	weights := CalculateExamWeights(text)
	if len(weights) == 0 {
		t.Fatalf("expected weights")
	}
	maxVal := 0.0
	for term, w := range weights {
		if w < 0 || w > 1 {
			t.Fatalf("weight out of range for %q: %f", term, w)
		}
		if w > maxVal {
			maxVal = w
		}
	}
	if maxVal < 0.999999 {
		t.Fatalf("expected max weight 1.0, got %f", maxVal)
	}
}

func TestCalculateExamWeightsHeaderWordsPresent(t *testing.T) {
	text := "Thermodynamics Overview\n" +
		strings.Repeat("filler words keep the document long enough to score well ", 4)
	weights := CalculateExamWeights(text)
	if w, ok := weights["thermodynamics"]; !ok || w <= 0 {
		t.Fatalf("expected header word to be weighted, got %v", weights)
	}
	if w, ok := weights["overview"]; !ok || w <= 0 {
		t.Fatalf("expected header word to be weighted, got %v", weights)
	}
}

func TestCalculateExamWeightsNoHeadersNoTerms(t *testing.T) {
	// One long line, every token a stop word: nothing to score.
	text := strings.Repeat("the and of to in is was for on ", 10)
	if got := CalculateExamWeights(text); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestCalculateExamWeightsIdempotent(t *testing.T) {
	text := "Linear Algebra\nMatrices and vectors underpin linear transformations across spaces."
	first := CalculateExamWeights(text)
	second := CalculateExamWeights(text)
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if second[k] != v {
			t.Fatalf("weight drifted for %q: %f vs %f", k, v, second[k])
		}
	}
}

func TestImportanceBadgeThresholds(t *testing.T) {
	cases := []struct {
		weight float64
		want   string
	}{
		{0.95, BadgeHot},
		{0.71, BadgeHot},
		{0.7, BadgeWarm},
		{0.41, BadgeWarm},
		{0.4, BadgeCold},
		{0.0, BadgeCold},
	}
	for _, c := range cases {
		if got := ImportanceBadge(c.weight); got != c.want {
			t.Fatalf("badge for %f: got %s want %s", c.weight, got, c.want)
		}
	}
}
