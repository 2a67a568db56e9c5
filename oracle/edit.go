package oracle

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/codahale/aesbreak/modes"
)

// ErrEditOutOfRange is returned when an edit extends past the end of the stored message.
var ErrEditOutOfRange = errors.New("aesbreak/oracle: edit out of range")

// EditStore holds a message encrypted with AES-128-CTR and allows random-access rewrites of it.
type EditStore struct {
	mu        sync.Mutex
	b         cipher.Block
	nonce     uint64
	plaintext []byte
}

// NewEditStore encrypts plaintext under a fresh key and nonce read from rand.
func NewEditStore(rand io.Reader, plaintext []byte) *EditStore {
	return &EditStore{
		b:         newKey(rand),
		nonce:     binary.LittleEndian.Uint64(random(rand, 8)),
		plaintext: append([]byte(nil), plaintext...),
	}
}

// Ciphertext returns the current ciphertext.
func (s *EditStore) Ciphertext() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.encrypt()
}

// Edit replaces the plaintext at offset with newtext, re-encrypts the message, and returns the new ciphertext.
func (s *EditStore) Edit(offset int, newtext []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offset < 0 || offset+len(newtext) > len(s.plaintext) {
		return nil, ErrEditOutOfRange
	}
	copy(s.plaintext[offset:], newtext)
	return s.encrypt(), nil
}

func (s *EditStore) encrypt() []byte {
	ciphertext := make([]byte, len(s.plaintext))
	modes.NewCTR(s.b, s.nonce, binary.LittleEndian).XORKeyStream(ciphertext, s.plaintext)
	return ciphertext
}
