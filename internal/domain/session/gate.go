package session

import (
	stderrors "errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hirosato/smartrt/internal/domain/errors"
)

// AuthFailureMessage is reported when the passphrase does not match
const AuthFailureMessage = "Kata sandi salah!"

// Gate checks the shared passphrase that promotes a session to ADMIN.
// Only the bcrypt hash of the passphrase is kept in memory.
type Gate struct {
	hash []byte
}

// NewGate hashes passphrase with the given bcrypt cost
func NewGate(passphrase string, cost int) (*Gate, error) {
	if passphrase == "" {
		return nil, stderrors.New("passphrase must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: hash}, nil
}

// NewGateFromHash creates a gate from a precomputed bcrypt hash
func NewGateFromHash(hash []byte) (*Gate, error) {
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, err
	}
	return &Gate{hash: hash}, nil
}

// Check compares passphrase with the shared secret
func (g *Gate) Check(passphrase string) bool {
	return bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)) == nil
}

// Elevate moves the session to ADMIN when passphrase matches.
// On mismatch the role is left unchanged. There is no attempt limit.
func (g *Gate) Elevate(sess *Session, passphrase string) error {
	if !g.Check(passphrase) {
		return errors.NewAuthenticationError(AuthFailureMessage)
	}
	sess.Role = RoleAdmin
	sess.UpdatedAt = time.Now().UTC()
	return nil
}

// Demote moves the session back to RESIDENT unconditionally
func (g *Gate) Demote(sess *Session) {
	sess.Role = RoleResident
	sess.UpdatedAt = time.Now().UTC()
}
