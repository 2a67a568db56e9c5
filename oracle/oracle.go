// Package oracle defines the black-box capabilities the attacks in package attack run against, along with the victim
// constructions which implement them.
//
// Every victim owns its key and whatever random prefix, suffix, IV, or nonce it injects. None of them expose that
// state; an attacker only ever sees ciphertexts and booleans.
package oracle

import (
	"crypto/cipher"
	"io"
	"sync/atomic"

	"github.com/codahale/aesbreak/aes"
)

// An Encrypter encrypts attacker-controlled plaintext under a key the caller does not know.
//
// Implementations must be deterministic for a fixed key unless they document otherwise, and safe for concurrent use.
type Encrypter interface {
	Encrypt(plaintext []byte) []byte
}

// EncryptFunc adapts an ordinary function to the Encrypter interface.
type EncryptFunc func(plaintext []byte) []byte

// Encrypt calls f(plaintext).
func (f EncryptFunc) Encrypt(plaintext []byte) []byte {
	return f(plaintext)
}

// A PaddingChecker reports whether the CBC decryption of ciphertext under the given IV ends in valid PKCS#7 padding.
type PaddingChecker interface {
	CheckPadding(iv, ciphertext []byte) bool
}

// PaddingFunc adapts an ordinary function to the PaddingChecker interface.
type PaddingFunc func(iv, ciphertext []byte) bool

// CheckPadding calls f(iv, ciphertext).
func (f PaddingFunc) CheckPadding(iv, ciphertext []byte) bool {
	return f(iv, ciphertext)
}

// CountingEncrypter wraps an Encrypter and counts the queries made to it.
type CountingEncrypter struct {
	o       Encrypter
	queries atomic.Uint64
}

// CountEncrypts returns an Encrypter which counts the queries passed on to o.
func CountEncrypts(o Encrypter) *CountingEncrypter {
	return &CountingEncrypter{o: o}
}

func (c *CountingEncrypter) Encrypt(plaintext []byte) []byte {
	c.queries.Add(1)
	return c.o.Encrypt(plaintext)
}

// Queries returns the number of queries made so far.
func (c *CountingEncrypter) Queries() uint64 {
	return c.queries.Load()
}

// CountingChecker wraps a PaddingChecker and counts the queries made to it.
type CountingChecker struct {
	o       PaddingChecker
	queries atomic.Uint64
}

// CountChecks returns a PaddingChecker which counts the queries passed on to o.
func CountChecks(o PaddingChecker) *CountingChecker {
	return &CountingChecker{o: o}
}

func (c *CountingChecker) CheckPadding(iv, ciphertext []byte) bool {
	c.queries.Add(1)
	return c.o.CheckPadding(iv, ciphertext)
}

// Queries returns the number of queries made so far.
func (c *CountingChecker) Queries() uint64 {
	return c.queries.Load()
}

// newKey reads a fresh AES-128 key from rand and returns its cipher.
func newKey(rand io.Reader) cipher.Block {
	b, err := aes.NewCipher(random(rand, aes.KeySize))
	if err != nil {
		panic(err)
	}
	return b
}

// random reads n bytes from rand, panicking if rand fails.
func random(rand io.Reader, n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand, b); err != nil {
		panic(err)
	}
	return b
}

// randomIntn returns an int in [0, n) read from rand.
func randomIntn(rand io.Reader, n int) int {
	var v uint64
	for _, x := range random(rand, 8) {
		v = v<<8 | uint64(x)
	}
	return int(v % uint64(n)) //nolint:gosec // n > 0, result < n
}

var (
	_ Encrypter      = EncryptFunc(nil)
	_ Encrypter      = (*CountingEncrypter)(nil)
	_ PaddingChecker = PaddingFunc(nil)
	_ PaddingChecker = (*CountingChecker)(nil)
)
