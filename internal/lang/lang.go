// Package lang detects the language of a text fragment.
package lang

import "unicode"

// Detect returns "ru" when cyrillic letters outnumber latin ones, else "en".
func Detect(text string) string {
	cyrillic := 0
	latin := 0
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}
	if cyrillic > latin {
		return "ru"
	}
	return "en"
}
