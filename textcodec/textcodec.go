// Package textcodec converts text to UTF-8 bytes and base64, optionally byte-reversed.
package textcodec

import (
	"encoding/base64"
	"fmt"
	"slices"
)

// UTF8Bytes returns the UTF-8 bytes of s, in reverse order when reverse is set.
func UTF8Bytes(s string, reverse bool) []byte {
	b := []byte(s)
	if reverse {
		slices.Reverse(b)
	}

	return b
}

// EncodeBase64 returns the standard base64 encoding of the UTF-8 bytes of s,
// reversed before encoding when reverse is set.
func EncodeBase64(s string, reverse bool) string {
	return base64.StdEncoding.EncodeToString(UTF8Bytes(s, reverse))
}

// DecodeBase64 decodes standard base64 data into a string. When reversed is set the
// decoded bytes are reversed back first, undoing EncodeBase64(s, true).
func DecodeBase64(data string, reversed bool) (string, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	if reversed {
		slices.Reverse(b)
	}

	return string(b), nil
}
