package domain

import "unicode/utf8"

const (
	maskMarker       = "***"
	maskVisibleRunes = 4
	maskMinRunes     = 8
)

// Mask redacts a secret value for display.
//
// Values longer than 8 characters keep their first and last 4 characters around
// "***"; anything shorter becomes "***". Length is counted in runes.
func Mask(value string) string {
	if utf8.RuneCountInString(value) <= maskMinRunes {
		return maskMarker
	}
	runes := []rune(value)
	return string(runes[:maskVisibleRunes]) + maskMarker + string(runes[len(runes)-maskVisibleRunes:])
}

// MaskService returns a masked copy of one service's secrets.
func MaskService(keys map[string]string) map[string]string {
	out := make(map[string]string, len(keys))
	for k, v := range keys {
		out[k] = Mask(v)
	}
	return out
}

// MaskDocument returns a masked copy of every secret in doc.
func MaskDocument(doc Document) map[string]map[string]string {
	out := make(map[string]map[string]string, len(doc))
	for service, keys := range doc {
		out[service] = MaskService(keys)
	}
	return out
}
