// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for persisted entities.
const (
	PrefixUser     = "user"
	PrefixFavorite = "fav"
	PrefixTag      = "tag"
	PrefixToken    = "tok"
)

// Generate returns "prefix-<nanoid>", e.g. "fav-V1StGXR8_Z5jdHi6B-myT".
// The NanoID part is 21 URL-safe characters.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("generate id: %v", err))
	}
	return v
}
