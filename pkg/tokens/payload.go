package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Header is the decoded JOSE header of a token.
type Header map[string]any

// Algorithm returns the "alg" member when it is a string.
func (h Header) Algorithm() (string, bool) {
	alg, ok := h["alg"].(string)
	return alg, ok
}

// Nested reports whether "cty" marks the payload as a complete nested token.
func (h Header) Nested() bool {
	cty, ok := h["cty"].(string)
	return ok && strings.EqualFold(cty, ContentTypeJWT)
}

// Claims is the decoded claim set of a flat token. Numbers are kept as
// json.Number so integer claims can be told apart from fractional ones.
type Claims map[string]any

func (c Claims) str(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c Claims) Subject() string { return c.str("sub") }
func (c Claims) Issuer() string  { return c.str("iss") }
func (c Claims) Name() string    { return c.str("name") }
func (c Claims) Email() string   { return c.str("email") }
func (c Claims) Audience() any   { return c["aud"] }

// Expiration returns "exp" when it is present and an integer.
func (c Claims) Expiration() (int64, bool) {
	return integerClaim(c["exp"])
}

func integerClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if strings.ContainsAny(n.String(), ".eE") {
			return 0, false
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// Payload is the content of a token's payload segment: either a claim set
// or, when the header marks it with cty=JWT, a complete nested token.
type Payload interface {
	payloadBytes() ([]byte, error)
}

// ClaimsPayload is a JSON object payload.
type ClaimsPayload struct {
	Claims any
}

// NestedPayload carries another token verbatim as the payload text.
type NestedPayload struct {
	Token string
}

func (p ClaimsPayload) payloadBytes() ([]byte, error) {
	if p.Claims == nil {
		return nil, errors.New("missing claims")
	}
	return compactJSON(p.Claims)
}

func (p NestedPayload) payloadBytes() ([]byte, error) {
	if strings.TrimSpace(p.Token) == "" {
		return nil, errors.New("missing nested token")
	}
	return []byte(p.Token), nil
}

// decodeObject decodes text that must hold exactly one JSON object.
func decodeObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	return obj, nil
}

// compactJSON marshals v without whitespace and without HTML escaping.
func compactJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
