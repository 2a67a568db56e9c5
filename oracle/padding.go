package oracle

import (
	"crypto/cipher"
	"io"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

// Lines are the base64-encoded plaintexts a PaddingServer is traditionally run over.
//
//nolint:gochecknoglobals // fixed test corpus
var Lines = []string{
	"MDAwMDAwTm93IHRoYXQgdGhlIHBhcnR5IGlzIGp1bXBpbmc=",
	"MDAwMDAxV2l0aCB0aGUgYmFzcyBraWNrZWQgaW4gYW5kIHRoZSBWZWdhJ3MgYXJlIHB1bXBpbic=",
	"MDAwMDAyUXVpY2sgdG8gdGhlIHBvaW50LCB0byB0aGUgcG9pbnQsIG5vIGZha2luZw==",
	"MDAwMDAzQ29va2luZyBNQydzIGxpa2UgYSBwb3VuZCBvZiBiYWNvbg==",
	"MDAwMDA0QnVybmluZyAnZW0sIGlmIHlvdSBhaW4ndCBxdWljayBhbmQgbmltYmxl",
	"MDAwMDA1SSBnbyBjcmF6eSB3aGVuIEkgaGVhciBhIGN5bWJhbA==",
	"MDAwMDA2QW5kIGEgaGlnaCBoYXQgd2l0aCBhIHNvdXBlZCB1cCB0ZW1wbw==",
	"MDAwMDA3SSdtIG9uIGEgcm9sbCwgaXQncyB0aW1lIHRvIGdvIHNvbG8=",
	"MDAwMDA4b2xsaW4nIGluIG15IGZpdmUgcG9pbnQgb2g=",
	"MDAwMDA5aXRoIG15IHJhZy10b3AgZG93biBzbyBteSBoYWlyIGNhbiBibG93",
}

// PaddingServer holds a CBC ciphertext under a random key and IV, and answers whether arbitrary ciphertexts decrypt to
// validly padded plaintexts.
type PaddingServer struct {
	b              cipher.Block
	iv, ciphertext []byte
}

// NewPaddingServer pads and encrypts plaintext under a fresh key and IV read from rand.
func NewPaddingServer(rand io.Reader, plaintext []byte) *PaddingServer {
	b := newKey(rand)
	iv := random(rand, aes.BlockSize)
	ciphertext := pkcs7.Pad(nil, plaintext, aes.BlockSize)
	modes.NewCBCEncrypter(b, iv).CryptBlocks(ciphertext, ciphertext)
	return &PaddingServer{b: b, iv: iv, ciphertext: ciphertext}
}

// Ciphertext returns copies of the server's IV and ciphertext.
func (s *PaddingServer) Ciphertext() (iv, ciphertext []byte) {
	return append([]byte(nil), s.iv...), append([]byte(nil), s.ciphertext...)
}

// CheckPadding decrypts ciphertext with the given IV and reports whether the result is validly padded. Malformed
// inputs are reported as invalid padding.
func (s *PaddingServer) CheckPadding(iv, ciphertext []byte) bool {
	if len(iv) != aes.BlockSize || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return false
	}

	plaintext := make([]byte, len(ciphertext))
	modes.NewCBCDecrypter(s.b, iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7.Valid(plaintext)
}

var _ PaddingChecker = (*PaddingServer)(nil)
