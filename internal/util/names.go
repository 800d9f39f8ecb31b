package util

import (
	"strings"
	"unicode"
)

// NormalizeName uppercases the first letter of each word, lowercases the
// rest, and rejoins words with single spaces ("  ana  MARIA " -> "Ana Maria").
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
