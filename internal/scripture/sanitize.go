package scripture

import "regexp"

// strongsTag matches the provider's inline Strong's-number annotations,
// e.g. "Love<S>26</S>".
var strongsTag = regexp.MustCompile(`<S>\d+</S>`)

// Clean removes every "<S>digits</S>" annotation and leaves all other text,
// including whitespace, untouched. Clean(Clean(s)) == Clean(s).
func Clean(raw string) string {
	return strongsTag.ReplaceAllLiteralString(raw, "")
}
