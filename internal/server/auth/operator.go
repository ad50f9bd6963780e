package auth

import (
	"time"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/cryptox"
)

// Operator exchanges the operator passphrase for an access token. Only an
// argon2 verifier of the passphrase is kept in memory.
type Operator struct {
	verifier  *cryptox.Verifier
	secretKey []byte
	validity  time.Duration
}

func NewOperator(passphrase string, secretKey []byte, validity time.Duration) (*Operator, error) {
	v, err := cryptox.NewVerifier(passphrase)
	if err != nil {
		return nil, err
	}
	return &Operator{verifier: v, secretKey: secretKey, validity: validity}, nil
}

// Login returns a fresh operator token, or common.ErrorUnauthorized when
// the passphrase does not match.
func (o *Operator) Login(passphrase string) (string, error) {
	if !o.verifier.Check(passphrase) {
		return "", common.ErrorUnauthorized
	}
	return GenerateToken(RoleOperator, o.secretKey, o.validity)
}

// Role returns the role carried by token.
func (o *Operator) Role(token string) (string, error) {
	return GetRoleFromToken(token, o.secretKey)
}
