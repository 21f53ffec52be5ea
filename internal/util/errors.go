package util

import "errors"

var (
	ErrNoExtractableText = errors.New("no extractable text found in document")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	ErrGenerationFailed = errors.New("generation failed")
	ErrEmptyResponse    = errors.New("provider returned empty response")
)
