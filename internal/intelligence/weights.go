package intelligence

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// Documents shorter than this carry too little signal for rarity weighting.
	minScorableLength = 50

	// Trimmed lines shorter than this are treated as likely headers.
	headerLineMax = 60

	// Top terms kept by the rarity pass.
	maxRarityTerms = 20

	headerSeedWeight  = 0.1
	headerBoostWeight = 0.2
)

// CalculateExamWeights identifies high-importance terms in study material and
// returns a term -> weight map normalized to [0,1]. Rarity scoring is
// best-effort; the header heuristic alone can produce weights.
func CalculateExamWeights(text string) map[string]float64 {
	weights := map[string]float64{}
	if len(text) < minScorableLength {
		return weights
	}

	for term, score := range rarityScores(text) {
		weights[term] = score
	}

	// Boost words appearing on short, header-like lines.
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if len(clean) == 0 || len(clean) >= headerLineMax {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(clean)) {
			if len(word) > 3 {
				prev, ok := weights[word]
				if !ok {
					prev = headerSeedWeight
				}
				weights[word] = prev + headerBoostWeight
			}
		}
	}

	if len(weights) > 0 {
		maxVal := 0.0
		for _, v := range weights {
			if v > maxVal {
				maxVal = v
			}
		}
		for k := range weights {
			w := weights[k] / maxVal
			if w > 1.0 {
				w = 1.0
			}
			weights[k] = w
		}
	}
	return weights
}

// rarityScores runs a single-document term-frequency pass over the text,
// keeping the top non-stopword terms. It never fails: degenerate input
// simply yields no scores and the caller degrades to heuristic-only weights.
func rarityScores(text string) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for _, tok := range tokenize(text) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 || len(counts) == 0 {
		return nil
	}

	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(counts))
	for term, c := range counts {
		ranked = append(ranked, termCount{term: term, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count == ranked[j].count {
			return ranked[i].term < ranked[j].term
		}
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > maxRarityTerms {
		ranked = ranked[:maxRarityTerms]
	}

	scores := make(map[string]float64, len(ranked))
	for _, tc := range ranked {
		scores[tc.term] = float64(tc.count) / float64(total)
	}
	return scores
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-rune tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		out = append(out, f)
	}
	return out
}
