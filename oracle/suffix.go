package oracle

import (
	"crypto/cipher"
	"io"
	"slices"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

// SuffixECB encrypts prefix || input || suffix with AES-128-ECB under a random key, padding with PKCS#7.
type SuffixECB struct {
	b              cipher.Block
	prefix, suffix []byte
}

// NewSuffixECB returns a SuffixECB with a fresh key read from rand. The prefix may be empty.
func NewSuffixECB(rand io.Reader, prefix, suffix []byte) *SuffixECB {
	return &SuffixECB{
		b:      newKey(rand),
		prefix: append([]byte(nil), prefix...),
		suffix: append([]byte(nil), suffix...),
	}
}

// NewRandomPrefixECB returns a SuffixECB whose prefix is between 0 and maxPrefix random bytes, all read from rand.
func NewRandomPrefixECB(rand io.Reader, maxPrefix int, suffix []byte) *SuffixECB {
	prefix := random(rand, randomIntn(rand, maxPrefix+1))
	return NewSuffixECB(rand, prefix, suffix)
}

func (s *SuffixECB) Encrypt(input []byte) []byte {
	ciphertext := pkcs7.Pad(nil, slices.Concat(s.prefix, input, s.suffix), aes.BlockSize)
	modes.NewECBEncrypter(s.b).CryptBlocks(ciphertext, ciphertext)
	return ciphertext
}

var _ Encrypter = (*SuffixECB)(nil)
