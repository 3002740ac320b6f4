package tokens

import "strings"

// ParsedToken is a token that passed the structural checks: alphabet,
// segment count and a decodable header. The payload is left encoded
// because its interpretation depends on the header.
type ParsedToken struct {
	EncHeader    string
	EncPayload   string
	EncSignature string
	Header       Header
}

// Parse runs the structural checks on a raw token.
func Parse(tokenStr string) (*ParsedToken, *Error) {
	if ch, ok := invalidSymbol(tokenStr); ok {
		return nil, rejectf(ReasonInvalidCharset, "%c", ch)
	}

	encHeader, encPayload, encSignature, err := validateStructure(tokenStr)
	if err != nil {
		return nil, err
	}

	headerText, decErr := DecodeText(encHeader)
	if decErr != nil {
		return nil, reject(ReasonHeaderNotBase64)
	}
	header, jsonErr := decodeObject(headerText)
	if jsonErr != nil {
		return nil, rejectf(ReasonHeaderNotJSON, "%v", jsonErr)
	}

	return &ParsedToken{
		EncHeader:    encHeader,
		EncPayload:   encPayload,
		EncSignature: encSignature,
		Header:       Header(header),
	}, nil
}

// invalidSymbol returns the first rune outside [A-Za-z0-9_.-].
func invalidSymbol(s string) (rune, bool) {
	for _, ch := range s {
		switch {
		case ch >= 'A' && ch <= 'Z',
			ch >= 'a' && ch <= 'z',
			ch >= '0' && ch <= '9',
			ch == '-', ch == '_', ch == '.':
			continue
		default:
			return ch, true
		}
	}
	return 0, false
}

func validateStructure(tokenStr string) (
	header string,
	payload string,
	signature string,
	err *Error,
) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		err = rejectf(ReasonMalformedSegments, "found %d parts", len(parts))
		return
	}
	header = parts[0]
	payload = parts[1]
	signature = parts[2]
	return
}
