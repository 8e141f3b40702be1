package persona

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxKeywords   = 50
	maxPriorities = 20
	maxTermLen    = 100
)

// ValidateProfile checks a profile for registrability. Term lists may be
// empty (the scorer divides by max(len, 1)), but the role must be set and
// every term must be a non-empty, bounded string.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Role) == "" {
		return fmt.Errorf("role is required")
	}
	if len(p.Keywords) > maxKeywords {
		return fmt.Errorf("too many keywords (%d, max %d)", len(p.Keywords), maxKeywords)
	}
	if len(p.Priorities) > maxPriorities {
		return fmt.Errorf("too many priorities (%d, max %d)", len(p.Priorities), maxPriorities)
	}
	for _, kw := range p.Keywords {
		if err := validateTerm(kw); err != nil {
			return fmt.Errorf("keyword %q: %w", kw, err)
		}
	}
	for _, pr := range p.Priorities {
		if err := validateTerm(pr); err != nil {
			return fmt.Errorf("priority %q: %w", pr, err)
		}
	}
	return nil
}

func validateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("empty term")
	}
	if len(term) > maxTermLen {
		return fmt.Errorf("term too long (%d chars, max %d)", len(term), maxTermLen)
	}
	return nil
}

var (
	nonSlugPattern = regexp.MustCompile(`[^a-z0-9-]`)
	dashRunPattern = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a filesystem/id-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugPattern.ReplaceAllString(s, "-")
	s = dashRunPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
