// Package password hides the credential hashing scheme behind a narrow
// interface so services never see plaintext handling details.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way credential transform used by the account service.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// Bcrypt implements Hasher with bcrypt at the given cost.
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a Hasher using bcrypt's default cost.
func NewBcrypt() Bcrypt {
	return Bcrypt{Cost: bcrypt.DefaultCost}
}

func (b Bcrypt) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b Bcrypt) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
