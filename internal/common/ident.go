package common

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
)

// Camel joins the letter and digit runs of s into lowerCamel:
// "display.name" is displayName, "user-id" is userId.
func Camel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var b strings.Builder

	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}

		b.WriteString(Exported(w))
	}

	return Unexported(b.String())
}

// Ident is Camel made safe as a local Go identifier. Keywords, predeclared
// names such as string or nil, and names starting with a digit get fallback
// as prefix; an empty result is fallback itself.
func Ident(s, fallback string) string {
	id := Camel(s)

	switch {
	case id == "":
		return fallback
	case unicode.IsDigit([]rune(id)[0]), token.IsKeyword(id), types.Universe.Lookup(id) != nil:
		return fallback + Exported(id)
	}

	return id
}

// Exported upper-cases the first letter of s.
func Exported(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// Unexported lower-cases the first letter of s.
func Unexported(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

// Snake converts a CamelCase name to snake_case; acronyms stay together,
// so "HTTPServer" becomes http_server.
func Snake(s string) string {
	r := []rune(s)

	var b strings.Builder

	for i, c := range r {
		if unicode.IsUpper(c) && i > 0 {
			prevLower := unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1])
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])

			if prevLower || (unicode.IsUpper(r[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(c))
	}

	return b.String()
}
