// internal/models/slug.go
package models

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugAttempts = 100

// Slugify lowercases value, strips accents and joins alphanumeric runs
// with hyphens.
func Slugify(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// UniqueSlug returns Slugify(value), suffixed with -2, -3, ... until exists
// reports it free. fallback is used when value has no sluggable characters.
func UniqueSlug(ctx context.Context, value, fallback string, exists func(context.Context, string) (int64, error)) (string, error) {
	base := Slugify(value)
	if base == "" {
		base = fallback
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		count, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
