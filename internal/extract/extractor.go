package extract

import (
	"os"
	"path/filepath"
	"strings"

	"studymate/internal/util"
)

// FromUpload extracts plain text from uploaded study material, dispatching on
// the file extension. The result is cleaned and sanitized but otherwise
// unprocessed.
func FromUpload(filename string, content []byte) (string, error) {
	var text string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = FromPDFBytes(content)
	case ".docx":
		text, err = FromDOCXBytes(content)
	case ".txt", ".md":
		text = string(content)
	default:
		return "", util.ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}
	text = util.SanitizeText(CleanText(text))
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}

// FromFile extracts text from a stored upload on disk. PDFs are read through
// the streaming reader rather than buffered whole; filename carries the
// original extension when the stored name differs.
func FromFile(path, filename string) (string, error) {
	if filename == "" {
		filename = filepath.Base(path)
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := FromPDFFile(path)
		if err != nil {
			return "", err
		}
		text = util.SanitizeText(CleanText(text))
		if text == "" {
			return "", util.ErrNoExtractableText
		}
		return text, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return FromUpload(filename, content)
}

// CleanText collapses runs of blank lines and trims every line, matching the
// shape the scorer's header heuristic expects.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
