// Package tokens provides issuing and validation of HS256 compact tokens,
// including tokens nested inside other tokens.
//
// A token is three base64url segments (padding stripped) joined by dots:
//
//	header.payload.signature
//
// The signature is HMAC-SHA256 over the ASCII bytes "header.payload" with a
// single static secret. Only "alg":"HS256" is accepted, and the algorithm is
// pinned before the signature is checked.
//
// # Nested Tokens
//
// When the header carries "cty":"JWT" (compared case-insensitively) the
// payload is not a claim set but the text of another complete token. The
// validator checks the outer signature, then validates the inner token from
// scratch, up to MaxNesting layers deep. Every layer is verified with its own
// signature, so a forged wrapper cannot smuggle an unverified inner token.
//
// # Claims Policy
//
// The innermost flat token must carry:
//
//   - "exp": an integer Unix timestamp not in the past
//   - "sub": a UUID (8-4-4-4-12 hex digits)
//   - "iss": exactly ExpectedIssuer
//   - "name" or "email": at least one non-blank string
//   - "email": when present, a well-formed address
//
// Rules are evaluated in that order and the first failing rule wins.
//
// # Usage
//
//	issuer, validator := tokens.InitServer([]byte(secret))
//
//	token, err := issuer.Issue(tokens.NewHS256Header(), tokens.ClaimsPayload{
//	    Claims: tokens.Claims{
//	        "sub":  "296c7f07-ba1a-11f0-83b6-62517600596c",
//	        "iss":  tokens.ExpectedIssuer,
//	        "exp":  time.Now().Add(time.Hour).Unix(),
//	        "name": "Ann",
//	    },
//	})
//
//	// wrap it
//	outer, err := issuer.Issue(tokens.NewNestedHeader(), tokens.NestedPayload{Token: token})
//
//	result, err := validator.Validate(outer)
//	// result.Nesting == 1, result.Claims.Subject() == "296c7f07-..."
//
// # Error Handling
//
// Rejections are *Error values carrying a Reason. A rejected nested token is
// wrapped, not replaced, so the deepest cause stays visible:
//
//	_, err := validator.Validate(outer)
//	fmt.Println(err) // "nested_token_invalid: token_expired"
//
//	switch {
//	case errors.Is(err, tokens.ErrTokenExpired):
//	    // expired at some level of nesting
//	case errors.Is(err, tokens.ErrSignatureInvalid):
//	    // forged or corrupted
//	}
//
//	if tErr, ok := tokens.AsError(err); ok {
//	    root := tErr.Root().Reason
//	}
package tokens
