package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Signer computes and verifies HS256 signatures with one static secret.
type Signer struct {
	secret []byte
}

// NewSigner copies the secret so later changes to the caller's slice cannot
// affect signing.
func NewSigner(secret []byte) *Signer {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Signer{secret: key}
}

// Sign returns the base64url HMAC-SHA256 of "encHeader.encPayload".
func (s *Signer) Sign(encHeader string, encPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(buildMessage(encHeader, encPayload)))
	return EncodeSegment(mac.Sum(nil))
}

// Verify recomputes the signature and compares it in constant time.
func (s *Signer) Verify(encHeader string, encPayload string, encSignature string) bool {
	expected := s.Sign(encHeader, encPayload)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(encSignature)) == 1
}

func buildMessage(encHeader string, encPayload string) string {
	return encHeader + "." + encPayload
}
