// Package kex implements an unauthenticated Diffie-Hellman key exchange over Ristretto255, with session messages
// encrypted with AES-128-CBC, and a man-in-the-middle which breaks it by key fixing.
//
// Neither party authenticates the other's public key, so an attacker relaying the exchange can substitute the identity
// element for both. Every scalar multiple of the identity is the identity, which fixes both parties' shared secret to
// a value the attacker knows.
package kex

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
	"github.com/gtank/ristretto255"
)

// PublicKeySize is the size, in bytes, of an encoded public key.
const PublicKeySize = 32

var (
	// ErrInvalidPublicKey is returned when a peer's public key is not a canonical Ristretto255 encoding.
	ErrInvalidPublicKey = errors.New("aesbreak/kex: invalid public key")

	// ErrWeakPublicKey is returned by strict parties when a peer's public key is the identity element.
	ErrWeakPublicKey = errors.New("aesbreak/kex: weak public key")

	// ErrInvalidMessage is returned when a sealed message cannot be opened.
	ErrInvalidMessage = errors.New("aesbreak/kex: invalid message")
)

// A Party is one side of the key exchange.
type Party struct {
	// Strict parties reject the identity element as a peer public key.
	Strict bool

	d *ristretto255.Scalar
	q *ristretto255.Element
}

// NewParty generates a key pair using rand.
func NewParty(rand io.Reader) (*Party, error) {
	var r [64]byte
	if _, err := io.ReadFull(rand, r[:]); err != nil {
		return nil, err
	}
	d, _ := ristretto255.NewScalar().SetUniformBytes(r[:])
	return &Party{d: d, q: ristretto255.NewIdentityElement().ScalarBaseMult(d)}, nil
}

// Public returns the party's encoded public key.
func (p *Party) Public() []byte {
	return p.q.Bytes()
}

// Shared returns the encoded shared element for the given peer public key.
func (p *Party) Shared(peer []byte) ([]byte, error) {
	q, _ := ristretto255.NewIdentityElement().SetCanonicalBytes(peer)
	if q == nil {
		return nil, ErrInvalidPublicKey
	}

	if p.Strict && q.Equal(ristretto255.NewIdentityElement()) == 1 {
		return nil, ErrWeakPublicKey
	}

	return ristretto255.NewIdentityElement().ScalarMult(p.d, q).Bytes(), nil
}

// SessionKey returns the AES-128 session key for the given peer public key: the first 16 bytes of the SHA-256 hash of
// the shared element.
func (p *Party) SessionKey(peer []byte) ([aes.KeySize]byte, error) {
	shared, err := p.Shared(peer)
	if err != nil {
		return [aes.KeySize]byte{}, err
	}
	return sessionKey(shared), nil
}

func sessionKey(shared []byte) [aes.KeySize]byte {
	h := sha256.Sum256(shared)
	return [aes.KeySize]byte(h[:aes.KeySize])
}

// Seal encrypts msg under key with AES-128-CBC and a random IV read from rand, returning IV || ciphertext.
func Seal(key [aes.KeySize]byte, rand io.Reader, msg []byte) ([]byte, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand, iv); err != nil {
		return nil, err
	}

	ciphertext, err := modes.EncryptCBC(key[:], iv, pkcs7.Pad(nil, msg, aes.BlockSize))
	if err != nil {
		return nil, err
	}
	return append(iv, ciphertext...), nil
}

// Open decrypts a message produced by Seal.
func Open(key [aes.KeySize]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < 2*aes.BlockSize {
		return nil, ErrInvalidMessage
	}

	plaintext, err := modes.DecryptCBC(key[:], sealed[:aes.BlockSize], sealed[aes.BlockSize:])
	if err != nil {
		return nil, ErrInvalidMessage
	}

	plaintext, err = pkcs7.Unpad(plaintext)
	if err != nil {
		return nil, ErrInvalidMessage
	}
	return plaintext, nil
}
