package domain

import (
	"strings"
	"time"
)

// ParseDurationArg parses a moderation duration argument: a number of
// digits followed by one of the units d, h or m. Anything else is not
// a duration.
func ParseDurationArg(s string) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}
	num := s[:len(s)-1]
	if !isDigits(num) {
		return 0, false
	}
	n := int64(0)
	for _, c := range num {
		n = n*10 + int64(c-'0')
	}
	switch s[len(s)-1] {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, true
	case 'h':
		return time.Duration(n) * time.Hour, true
	case 'm':
		return time.Duration(n) * time.Minute, true
	}
	return 0, false
}

// BanDirective detects the b::<N><unit> response convention. The first
// return is the ban duration; the second reports whether the response
// is a directive at all (a directive with an unparsable duration means
// "do nothing", not "send the text").
func BanDirective(response string) (time.Duration, bool, bool) {
	if !strings.HasPrefix(response, "b::") {
		return 0, false, false
	}
	d, ok := ParseDurationArg(response[len("b::"):])
	return d, true, ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
