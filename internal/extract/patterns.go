package extract

import (
	"regexp"
	"strings"
)

// fieldMatcher is one regex attempt for a secondary field. Matchers are tried
// in order and the first hit wins; results from later patterns are never
// merged in.
type fieldMatcher struct {
	re *regexp.Regexp
}

// firstMatch runs the matchers in sequence against the corpus and returns the
// trimmed first capture group of the first matcher that hits.
func firstMatch(corpus string, matchers []fieldMatcher) (string, bool) {
	for _, m := range matchers {
		if groups := m.re.FindStringSubmatch(corpus); groups != nil {
			return strings.TrimSpace(groups[1]), true
		}
	}
	return "", false
}

var (
	panTokenRe      = regexp.MustCompile(`[A-Z0-9]{10}`)
	panStructuralRe = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

	// Uppercase words on a single line; stopping at the newline keeps the
	// next label (DOB, FATHER) out of the capture.
	panNameMatchers = []fieldMatcher{
		{regexp.MustCompile(`(?:Name|NAME)\s*[:\-]?[ \t]*([A-Z]+(?: [A-Z]+)*)`)},
	}
	panDOBMatchers = []fieldMatcher{
		{regexp.MustCompile(`(?:Date of Birth|DOB|Birth)\s*[:\-]?\s*(\d{2}[/\-]\d{2}[/\-]\d{4})`)},
	}

	// Grouped 4-4-4 first, contiguous 12 digits second.
	aadhaarNumberMatchers = []fieldMatcher{
		{regexp.MustCompile(`\b(\d{4}\s\d{4}\s\d{4})\b`)},
		{regexp.MustCompile(`\b(\d{12})\b`)},
	}
	aadhaarNameMatchers = []fieldMatcher{
		{regexp.MustCompile(`(?:Name|NAME)\s*[:\-]?[ \t]*([A-Z][a-z]+(?: [A-Z][a-z]+)*)`)},
		{regexp.MustCompile(`(?m)^([A-Z][a-z]+(?: [A-Z][a-z]+){1,3})$`)},
	}
	aadhaarDOBMatchers = []fieldMatcher{
		{regexp.MustCompile(`(?:DOB|Date of Birth|Birth)\s*[:\-]?\s*(\d{2}[/\-]\d{2}[/\-]\d{4})`)},
		{regexp.MustCompile(`(\d{2}[/\-]\d{2}[/\-]\d{4})`)},
	}
	// Everything after the label up to a blank line or end of text.
	aadhaarAddressMatchers = []fieldMatcher{
		{regexp.MustCompile(`(?s)(?:Address|ADDRESS)[:\-]?\s*(.+?)(?:\n\n|$)`)},
	}
)
