package tokens

import "time"

const (
	// AlgorithmHS256 is the only accepted "alg".
	AlgorithmHS256 = "HS256"
	// TypeJWT is the "typ" written by the issuer.
	TypeJWT = "JWT"
	// ContentTypeJWT in "cty" marks a nested token payload.
	ContentTypeJWT = "JWT"
	// ExpectedIssuer is the only accepted "iss".
	ExpectedIssuer = "Server-KN-P-221"
	// MaxNesting bounds how many cty=JWT layers are unwrapped.
	MaxNesting = 3
)

type Issuer interface {
	Issue(Header, Payload) (string, error)
}

type Validator interface {
	Validate(string) (*Result, error)
}

// Result is a successful validation: the header of the outermost token, the
// claims of the innermost flat token and the number of unwrapped layers.
type Result struct {
	Header  Header
	Claims  Claims
	Nesting int
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now as the source of "now" for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// InitServer builds the HS256 issuer and validator around one secret.
func InitServer(
	secret []byte,
	opts ...Option,
) (
	Issuer,
	Validator,
) {
	server := NewServer(secret, opts...)
	return server, server
}

// NewHS256Header returns the header of a flat token.
func NewHS256Header() Header {
	return Header{
		"alg": AlgorithmHS256,
		"typ": TypeJWT,
	}
}

// NewNestedHeader returns the header of a token wrapping another token.
func NewNestedHeader() Header {
	return Header{
		"alg": AlgorithmHS256,
		"typ": TypeJWT,
		"cty": ContentTypeJWT,
	}
}
