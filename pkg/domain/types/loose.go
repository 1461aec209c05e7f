package types

import "strings"

// looseKey reduces a value to lowercase alphanumerics so that client input
// like "org-1", "Org1" and "ORG1MSP" can be compared against canonical
// enumeration members.
func looseKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

func looseEquals(a, b string) bool {
	return looseKey(a) == looseKey(b)
}
