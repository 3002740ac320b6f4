package tokens

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

var errNotBase64URLText = errors.New("segment is not valid base64url text")

// EncodeSegment encodes data with the URL-safe alphabet, padding stripped.
func EncodeSegment(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

// DecodeSegment restores the padding stripped by EncodeSegment and decodes
// the segment with the URL-safe alphabet.
func DecodeSegment(segment string) ([]byte, error) {
	if pad := (4 - len(segment)%4) % 4; pad > 0 {
		segment += strings.Repeat("=", pad)
	}
	data, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return nil, errNotBase64URLText
	}
	return data, nil
}

// DecodeText decodes a segment whose content must be UTF-8 text. Alphabet,
// padding and encoding failures are all reported as the same error.
func DecodeText(segment string) (string, error) {
	data, err := DecodeSegment(segment)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errNotBase64URLText
	}
	return string(data), nil
}
