package auth

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// TokenErrorKind classifies why a token was rejected.
type TokenErrorKind int

const (
	Malformed TokenErrorKind = iota + 1
	SignatureInvalid
	Expired
)

func (k TokenErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case SignatureInvalid:
		return "signature invalid"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("TokenErrorKind(%d)", int(k))
	}
}

// TokenError is returned by Issuer.Verify. Every TokenError matches
// common.ErrInvalidToken; expired ones also match common.ErrTokenExpired.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + e.Kind.String()
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

func (e *TokenError) Is(target error) bool {
	switch target {
	case common.ErrInvalidToken:
		return true
	case common.ErrTokenExpired:
		return e.Kind == Expired
	}
	return false
}
