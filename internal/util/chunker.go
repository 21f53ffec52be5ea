package util

import "strings"

func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = 1200
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	runes := []rune(text)
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}
	out := make([]string, 0)
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[i:end]))
		if part != "" {
			out = append(out, part)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}

// TruncateForPrompt caps text sent to a provider at maxChars runes. The rune
// window comes from the first chunk of ChunkText; the tail is then cut on a
// whitespace boundary where possible.
func TruncateForPrompt(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	if len([]rune(text)) <= maxChars {
		return text
	}
	chunks := ChunkText(text, maxChars, 0)
	if len(chunks) == 0 {
		return ""
	}
	cut := chunks[0]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > maxChars/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
