package service

import (
	"strings"
	"unicode/utf8"

	apperrors "notesapi/internal/errors"
)

// Limits are in characters, matching the column sizes.
const (
	maxTitleLength   = 100
	maxTagNameLength = 50
)

// normalizeTagNames trims names, drops blanks and duplicates, and keeps the
// first-seen order.
func normalizeTagNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > maxTagNameLength {
			return nil, apperrors.Validation("tag names must be at most 50 characters")
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
