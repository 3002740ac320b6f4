package service

import "git.sr.ht/~jakintosh/tokengate/pkg/tokens"

const DiscountPercent = 7

// Discount is the protected resource handed to an authorized caller.
type Discount struct {
	DiscountPercent int    `json:"discountPercent"`
	ForUser         string `json:"forUser"`
	Audience        any    `json:"aud"`
	Expiration      any    `json:"exp"`
}

// Discount builds the offer for the claims of an accepted token.
func (s *Service) Discount(
	claims tokens.Claims,
) *Discount {
	d := &Discount{
		DiscountPercent: DiscountPercent,
		ForUser:         claims.Name(),
		Audience:        claims.Audience(),
	}
	if exp, ok := claims.Expiration(); ok {
		d.Expiration = exp
	}
	return d
}
