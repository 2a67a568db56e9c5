package kex

import (
	"github.com/codahale/aesbreak/aes"
	"github.com/gtank/ristretto255"
)

// MITM sits between two parties and replaces each public key it relays with the identity element, fixing both sides'
// session key.
type MITM struct {
	key [aes.KeySize]byte
}

// NewMITM returns a MITM.
func NewMITM() *MITM {
	return &MITM{key: sessionKey(ristretto255.NewIdentityElement().Bytes())}
}

// Relay returns the public key to forward in place of the one it was given.
func (m *MITM) Relay(_ []byte) []byte {
	return ristretto255.NewIdentityElement().Bytes()
}

// Key returns the session key both parties end up with.
func (m *MITM) Key() [aes.KeySize]byte {
	return m.key
}

// Decrypt opens a sealed message relayed between the parties.
func (m *MITM) Decrypt(sealed []byte) ([]byte, error) {
	return Open(m.key, sealed)
}
