package header

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const defaultInitials = "U"

// Initials derives the avatar fallback text of a display name.
func Initials(name string) string {
	tokens := strings.Fields(name)

	switch len(tokens) {
	case 0:
		return defaultInitials
	case 1:
		return firstUpper(tokens[0])
	default:
		return firstUpper(tokens[0]) + firstUpper(tokens[len(tokens)-1])
	}
}

func firstUpper(token string) string {
	r, _ := utf8.DecodeRuneInString(token)
	return string(unicode.ToUpper(r))
}
