package tokens

import "strings"

func (server *Server) validate(tokenStr string, depth int) (*Result, *Error) {
	if depth > MaxNesting {
		return nil, reject(ReasonNestingDepthExceeded)
	}

	token, err := Parse(tokenStr)
	if err != nil {
		return nil, err
	}

	// the algorithm is pinned before the signature is looked at
	if alg, ok := token.Header.Algorithm(); !ok || alg != AlgorithmHS256 {
		return nil, reject(ReasonUnsupportedAlgorithm)
	}

	if !server.signer.Verify(token.EncHeader, token.EncPayload, token.EncSignature) {
		return nil, reject(ReasonSignatureInvalid)
	}

	payload, err := decodePayload(token.Header, token.EncPayload)
	if err != nil {
		return nil, err
	}

	switch p := payload.(type) {
	case NestedPayload:
		inner, err := server.validate(p.Token, depth+1)
		if err != nil {
			return nil, &Error{Reason: ReasonNestedTokenInvalid, Inner: err}
		}
		inner.Header = token.Header
		inner.Nesting++
		return inner, nil

	case ClaimsPayload:
		claims := p.Claims.(Claims)
		if err := server.verifyClaims(claims); err != nil {
			return nil, err
		}
		return &Result{Header: token.Header, Claims: claims, Nesting: 0}, nil
	}

	return nil, reject(ReasonPayloadNotJSON)
}

// decodePayload selects the payload shape from the header's cty.
func decodePayload(header Header, encPayload string) (Payload, *Error) {
	if header.Nested() {
		text, err := DecodeText(encPayload)
		if err != nil {
			return nil, reject(ReasonNestedPayloadInvalid)
		}
		inner := strings.TrimSpace(text)
		if inner == "" {
			return nil, reject(ReasonNestedPayloadInvalid)
		}
		return NestedPayload{Token: inner}, nil
	}

	text, err := DecodeText(encPayload)
	if err != nil {
		return nil, reject(ReasonPayloadNotBase64)
	}
	obj, err := decodeObject(text)
	if err != nil {
		return nil, rejectf(ReasonPayloadNotJSON, "%v", err)
	}
	return ClaimsPayload{Claims: Claims(obj)}, nil
}

func (server *Server) verifyClaims(claims Claims) *Error {
	exp, ok := claims.Expiration()
	if !ok {
		return reject(ReasonMissingExp)
	}
	if exp < server.now().Unix() {
		return reject(ReasonTokenExpired)
	}
	return ValidateClaims(claims)
}
