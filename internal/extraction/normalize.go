package extraction

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	problemIDPattern  = regexp.MustCompile(`^[a-z0-9]+$`)
)

// NormalizeName turns a problem title into a directory-safe name: lowercase,
// punctuation removed, whitespace runs joined with underscores.
// NormalizeName(NormalizeName(s)) == NormalizeName(s).
func NormalizeName(title string) string {
	name := strings.ToLower(title)
	name = nonWordPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	return whitespacePattern.ReplaceAllString(name, "_")
}

// ProblemID returns the trailing path segment of href if it is lowercase alphanumeric.
func ProblemID(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	path := u.Path
	if trimmed, ok := strings.CutSuffix(path, "/"); ok {
		// A trailing slash is allowed only after an id, as in /kata/<id>/.
		if strings.LastIndex(trimmed, "/") <= 0 {
			return "", false
		}
		path = trimmed
	}
	segment := path[strings.LastIndex(path, "/")+1:]
	if !problemIDPattern.MatchString(segment) {
		return "", false
	}
	return segment, true
}
