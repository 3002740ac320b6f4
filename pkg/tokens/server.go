package tokens

import "time"

// Server implements both Issuer and Validator around one HS256 secret. It
// holds no mutable state and is safe for concurrent use. Create a Server
// instance using InitServer or NewServer.
type Server struct {
	signer *Signer
	now    func() time.Time
}

func NewServer(secret []byte, opts ...Option) *Server {
	server := &Server{
		signer: NewSigner(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(server)
	}
	return server
}

// Signer exposes the server's signer.
func (server *Server) Signer() *Signer {
	return server.signer
}

//
// Issuer interface

func (server *Server) Issue(
	header Header,
	payload Payload,
) (string, error) {
	return encodeToken(header, payload, server.signer)
}

//
// Validator interface

func (server *Server) Validate(
	tokenStr string,
) (*Result, error) {
	result, err := server.validate(tokenStr, 0)
	if err != nil {
		return nil, err
	}
	return result, nil
}
