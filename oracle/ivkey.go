package oracle

import (
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

// HighASCIIError is returned by IVKeyStore.Check when a decrypted message contains bytes outside 7-bit ASCII. It
// carries the offending plaintext, as a careless server's error message would.
type HighASCIIError struct {
	Plaintext []byte
}

func (e *HighASCIIError) Error() string {
	return fmt.Sprintf("aesbreak/oracle: invalid message %q", e.Plaintext)
}

// IVKeyStore encrypts messages with AES-128-CBC, reusing the key as the IV.
type IVKeyStore struct {
	b   cipher.Block
	key []byte
}

// NewIVKeyStore returns an IVKeyStore with a fresh key read from rand.
func NewIVKeyStore(rand io.Reader) *IVKeyStore {
	key := random(rand, aes.KeySize)
	b, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	return &IVKeyStore{b: b, key: key}
}

// Encrypt pads plaintext with PKCS#7 and encrypts it.
func (s *IVKeyStore) Encrypt(plaintext []byte) []byte {
	ciphertext := pkcs7.Pad(nil, plaintext, aes.BlockSize)
	modes.NewCBCEncrypter(s.b, s.key).CryptBlocks(ciphertext, ciphertext)
	return ciphertext
}

// Check decrypts ciphertext and returns a *HighASCIIError if the plaintext contains any byte above 0x7f. Padding is
// neither checked nor removed, and PKCS#7 padding bytes are themselves ASCII.
func (s *IVKeyStore) Check(ciphertext []byte) error {
	if len(ciphertext)%aes.BlockSize != 0 {
		return modes.ErrInvalidLength
	}

	plaintext := make([]byte, len(ciphertext))
	modes.NewCBCDecrypter(s.b, s.key).CryptBlocks(plaintext, ciphertext)
	for _, c := range plaintext {
		if c > 0x7f {
			return &HighASCIIError{Plaintext: plaintext}
		}
	}
	return nil
}

// Key returns the store's key, for checking a recovered key against.
func (s *IVKeyStore) Key() aes.Block {
	return aes.Block(s.key)
}

var _ Encrypter = (*IVKeyStore)(nil)
