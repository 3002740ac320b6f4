package tokens

import (
	"errors"
	"fmt"
)

// Reason identifies why a token was rejected.
type Reason string

const (
	ReasonInvalidCharset       Reason = "invalid_charset"
	ReasonMalformedSegments    Reason = "malformed_segments"
	ReasonHeaderNotBase64      Reason = "header_not_base64"
	ReasonHeaderNotJSON        Reason = "header_not_json"
	ReasonUnsupportedAlgorithm Reason = "unsupported_algorithm"
	ReasonSignatureInvalid     Reason = "signature_invalid"
	ReasonNestedPayloadInvalid Reason = "nested_payload_invalid"
	ReasonNestedTokenInvalid   Reason = "nested_token_invalid"
	ReasonPayloadNotBase64     Reason = "payload_not_base64"
	ReasonPayloadNotJSON       Reason = "payload_not_json"
	ReasonMissingExp           Reason = "missing_exp"
	ReasonTokenExpired         Reason = "token_expired"
	ReasonNestingDepthExceeded Reason = "nesting_depth_exceeded"
	ReasonInvalidSub           Reason = "invalid_sub"
	ReasonInvalidIss           Reason = "invalid_iss"
	ReasonMissingNameOrEmail   Reason = "missing_name_or_email"
	ReasonInvalidEmailFormat   Reason = "invalid_email_format"
)

var reasonMessages = map[Reason]string{
	ReasonInvalidCharset:       "token has invalid base64url symbol",
	ReasonMalformedSegments:    "token format invalid (expected 3 parts: header.payload.signature)",
	ReasonHeaderNotBase64:      "header part is not valid base64url",
	ReasonHeaderNotJSON:        "header JSON invalid",
	ReasonUnsupportedAlgorithm: "unsupported alg (expected HS256)",
	ReasonSignatureInvalid:     "signature invalid",
	ReasonNestedPayloadInvalid: "nested JWT payload invalid (expected inner JWT string)",
	ReasonNestedTokenInvalid:   "nested JWT invalid",
	ReasonPayloadNotBase64:     "payload part is not valid base64url",
	ReasonPayloadNotJSON:       "payload JSON invalid",
	ReasonMissingExp:           "payload missing/invalid exp",
	ReasonTokenExpired:         "token expired",
	ReasonNestingDepthExceeded: "nested JWT depth limit exceeded",
	ReasonInvalidSub:           "invalid sub (expected UUID)",
	ReasonInvalidIss:           "invalid iss",
	ReasonMissingNameOrEmail:   "must contain name or email",
	ReasonInvalidEmailFormat:   "invalid email format",
}

// Message returns the human readable description of the reason.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Error is a token rejection. Rejections of a nested token keep the inner
// rejection in Inner, so the chain down to the deepest cause is preserved.
type Error struct {
	Reason Reason
	Detail string
	Inner  *Error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Inner.Error())
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s)", e.Reason, e.Detail)
	}
	return string(e.Reason)
}

// Unwrap returns the rejection of the nested token, if any.
func (e *Error) Unwrap() error {
	if e.Inner == nil {
		return nil
	}
	return e.Inner
}

// Is reports whether target is an *Error with the same reason, which lets
// errors.Is match the exported sentinels anywhere in the chain.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

// Root returns the deepest error in the chain.
func (e *Error) Root() *Error {
	root := e
	for root.Inner != nil {
		root = root.Inner
	}
	return root
}

// Describe renders the chain with the readable message of every level,
// e.g. "nested JWT invalid: token expired".
func (e *Error) Describe() string {
	msg := e.Reason.Message()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.Detail)
	}
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s", msg, e.Inner.Describe())
	}
	return msg
}

func reject(reason Reason) *Error {
	return &Error{Reason: reason}
}

func rejectf(reason Reason, format string, args ...any) *Error {
	return &Error{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is.
var (
	ErrInvalidCharset       error = reject(ReasonInvalidCharset)
	ErrMalformedSegments    error = reject(ReasonMalformedSegments)
	ErrHeaderNotBase64      error = reject(ReasonHeaderNotBase64)
	ErrHeaderNotJSON        error = reject(ReasonHeaderNotJSON)
	ErrUnsupportedAlgorithm error = reject(ReasonUnsupportedAlgorithm)
	ErrSignatureInvalid     error = reject(ReasonSignatureInvalid)
	ErrNestedPayloadInvalid error = reject(ReasonNestedPayloadInvalid)
	ErrNestedTokenInvalid   error = reject(ReasonNestedTokenInvalid)
	ErrPayloadNotBase64     error = reject(ReasonPayloadNotBase64)
	ErrPayloadNotJSON       error = reject(ReasonPayloadNotJSON)
	ErrMissingExp           error = reject(ReasonMissingExp)
	ErrTokenExpired         error = reject(ReasonTokenExpired)
	ErrNestingDepthExceeded error = reject(ReasonNestingDepthExceeded)
	ErrInvalidSub           error = reject(ReasonInvalidSub)
	ErrInvalidIss           error = reject(ReasonInvalidIss)
	ErrMissingNameOrEmail   error = reject(ReasonMissingNameOrEmail)
	ErrInvalidEmailFormat   error = reject(ReasonInvalidEmailFormat)
)

// AsError extracts the *Error from err, if it is one.
func AsError(err error) (*Error, bool) {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}
