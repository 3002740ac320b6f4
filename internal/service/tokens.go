package service

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

// Mode selects which fixture token IssueToken produces.
type Mode string

const (
	ModeDefault       Mode = ""
	ModeExpired       Mode = "expired"
	ModeNested        Mode = "nested"
	ModeNestedExpired Mode = "nested_expired"
	ModeBadSubject    Mode = "bad_sub"
	ModeWrongIssuer   Mode = "wrong_iss"
	ModeAnonymous     Mode = "anonymous"
	ModeBadEmail      Mode = "bad_email"
)

var modes = []Mode{
	ModeDefault,
	ModeExpired,
	ModeNested,
	ModeNestedExpired,
	ModeBadSubject,
	ModeWrongIssuer,
	ModeAnonymous,
	ModeBadEmail,
}

const (
	DefaultSubject  = "296c7f07-ba1a-11f0-83b6-62517600596c"
	DefaultAudience = "admin"
	DefaultName     = "Default Administrator"
	DefaultEmail    = "change.me@fake.net"
)

// Modes lists every supported mode.
func Modes() []Mode {
	return append([]Mode(nil), modes...)
}

// ParseMode matches s case-insensitively against the supported modes.
func ParseMode(
	s string,
) (
	Mode,
	error,
) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Nested reports whether the mode wraps its token in a cty=JWT layer.
func (m Mode) Nested() bool {
	return m == ModeNested || m == ModeNestedExpired
}

func (m Mode) expired() bool {
	return m == ModeExpired || m == ModeNestedExpired
}

// IssuedToken is a fixture token with the sections it was built from. For
// nested modes Claims is nil and Inner holds the wrapped flat token.
type IssuedToken struct {
	Mode   Mode
	Token  string
	Header tokens.Header
	Claims tokens.Claims
	Inner  *IssuedToken
}

// IssueToken issues the fixture token for the named mode.
func (s *Service) IssueToken(
	modeName string,
) (
	*IssuedToken,
	error,
) {
	mode, err := ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	flat, err := s.issueFlat(mode)
	if err != nil {
		return nil, err
	}
	if !mode.Nested() {
		return flat, nil
	}

	header := tokens.NewNestedHeader()
	outer, err := s.tokenIssuer.Issue(header, tokens.NestedPayload{Token: flat.Token})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue nested token: %v", ErrInternal, err)
	}

	return &IssuedToken{
		Mode:   mode,
		Token:  outer,
		Header: header,
		Inner:  flat,
	}, nil
}

func (s *Service) issueFlat(
	mode Mode,
) (
	*IssuedToken,
	error,
) {
	header := tokens.NewHS256Header()
	claims := s.fixtureClaims(mode)

	token, err := s.tokenIssuer.Issue(header, tokens.ClaimsPayload{Claims: claims})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue token: %v", ErrInternal, err)
	}

	return &IssuedToken{
		Mode:   mode,
		Token:  token,
		Header: header,
		Claims: claims,
	}, nil
}

func (s *Service) fixtureClaims(
	mode Mode,
) tokens.Claims {
	now := s.now()
	exp := now.Add(s.lifetime)
	if mode.expired() {
		exp = now.Add(-s.expiredOffset)
	}

	claims := tokens.Claims{
		"sub":   DefaultSubject,
		"iss":   tokens.ExpectedIssuer,
		"aud":   DefaultAudience,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"name":  DefaultName,
		"email": DefaultEmail,
	}

	switch mode {
	case ModeBadSubject:
		claims["sub"] = strings.ReplaceAll(DefaultSubject, "-", "")
	case ModeWrongIssuer:
		claims["iss"] = "Server-KN-P-000"
	case ModeAnonymous:
		delete(claims, "name")
		delete(claims, "email")
	case ModeBadEmail:
		claims["email"] = "change.me@fake"
	}
	return claims
}
