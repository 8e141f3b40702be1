package segment

import "regexp"

// headerRule classifies a trimmed, non-blank line as a section header.
// Rules are evaluated in order; the first match wins.
type headerRule struct {
	name    string
	pattern *regexp.Regexp
}

func (r headerRule) matches(line string) bool {
	return r.pattern.MatchString(line)
}

// Header length bounds: lines shorter than minHeaderLen or longer than
// maxHeaderLen are never headers regardless of shape.
const (
	minHeaderLen = 3
	maxHeaderLen = 100
)

var headerRules = []headerRule{
	{name: "all-caps", pattern: regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`)},
	{name: "numbered", pattern: regexp.MustCompile(`^\d+\.?\s+[A-Z]`)},
	{name: "title-case", pattern: regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)*:?$`)},
	{name: "bullet", pattern: regexp.MustCompile(`^[•\-\*]\s+[A-Z]`)},
	{name: "word-colon", pattern: regexp.MustCompile(`^\w+\s*:$`)},
}

// IsHeader reports whether a line looks like a section header.
func IsHeader(line string) bool {
	if len(line) < minHeaderLen || len(line) > maxHeaderLen {
		return false
	}
	for _, rule := range headerRules {
		if rule.matches(line) {
			return true
		}
	}
	return false
}
