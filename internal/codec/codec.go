// Package codec converts between raw file text and the transport-safe
// base64 form used both by the context store's internal representation
// and by the GitHub blob endpoint.
package codec

import (
	"encoding/base64"
	"fmt"
)

// Encode converts raw text to its base64 transport form.
func Encode(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// Decode converts the base64 transport form back to raw text.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding content: %w", err)
	}
	return string(raw), nil
}
