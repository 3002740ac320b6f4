package tokens

import (
	"regexp"
	"strings"
)

var (
	subjectPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	emailPattern   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ValidateClaims applies the claim policy in a fixed order and reports the
// first rule that fails: sub, iss, name/email presence, email format.
func ValidateClaims(claims Claims) *Error {
	sub, ok := claims["sub"].(string)
	if !ok || !subjectPattern.MatchString(sub) {
		return reject(ReasonInvalidSub)
	}

	iss, ok := claims["iss"].(string)
	if !ok || iss != ExpectedIssuer {
		return reject(ReasonInvalidIss)
	}

	_, hasName := trimmedClaim(claims, "name")
	email, hasEmail := trimmedClaim(claims, "email")
	if !hasName && !hasEmail {
		return reject(ReasonMissingNameOrEmail)
	}

	if hasEmail && !emailPattern.MatchString(email) {
		return reject(ReasonInvalidEmailFormat)
	}

	return nil
}

// trimmedClaim returns the trimmed string claim and whether it is non-empty.
func trimmedClaim(claims Claims, key string) (string, bool) {
	v, ok := claims[key].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
