package modes

import (
	"crypto/cipher"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/internal/mem"
)

type cbc struct {
	b    cipher.Block
	iv   []byte
	next []byte
}

func newCBC(b cipher.Block, iv []byte) *cbc {
	if len(iv) != b.BlockSize() {
		panic("aesbreak/modes: IV length must equal block size")
	}
	return &cbc{
		b:    b,
		iv:   append([]byte(nil), iv...),
		next: make([]byte, len(iv)),
	}
}

type cbcEncrypter cbc

// NewCBCEncrypter returns a cipher.BlockMode which encrypts in cipher block chaining mode using b and the given IV.
// The IV must be exactly one block long.
func NewCBCEncrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return (*cbcEncrypter)(newCBC(b, iv))
}

func (x *cbcEncrypter) BlockSize() int {
	return len(x.iv)
}

func (x *cbcEncrypter) CryptBlocks(dst, src []byte) {
	n := len(x.iv)
	checkCryptBlocks(dst, src, n)

	iv := x.iv
	for len(src) > 0 {
		mem.XOR(dst[:n], src[:n], iv)
		x.b.Encrypt(dst[:n], dst[:n])
		iv = dst[:n]
		dst, src = dst[n:], src[n:]
	}

	// Chain into the next call.
	copy(x.iv, iv)
}

type cbcDecrypter cbc

// NewCBCDecrypter returns a cipher.BlockMode which decrypts in cipher block chaining mode using b and the given IV.
// The IV must be exactly one block long.
func NewCBCDecrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return (*cbcDecrypter)(newCBC(b, iv))
}

func (x *cbcDecrypter) BlockSize() int {
	return len(x.iv)
}

func (x *cbcDecrypter) CryptBlocks(dst, src []byte) {
	n := len(x.iv)
	checkCryptBlocks(dst, src, n)

	for len(src) > 0 {
		// Save the ciphertext block before dst overwrites it, in case they alias.
		copy(x.next, src[:n])
		x.b.Decrypt(dst[:n], src[:n])
		mem.XOR(dst[:n], dst[:n], x.iv)
		x.iv, x.next = x.next, x.iv
		dst, src = dst[n:], src[n:]
	}
}

// EncryptCBC encrypts a block-aligned plaintext with AES-128 in CBC mode. A nil IV means the all-zero IV.
func EncryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	return cryptCBC(key, iv, plaintext, NewCBCEncrypter)
}

// DecryptCBC decrypts a block-aligned ciphertext with AES-128 in CBC mode. A nil IV means the all-zero IV. Padding is
// left in place.
func DecryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	return cryptCBC(key, iv, ciphertext, NewCBCDecrypter)
}

func cryptCBC(key, iv, src []byte, mode func(cipher.Block, []byte) cipher.BlockMode) ([]byte, error) {
	if iv == nil {
		iv = make([]byte, aes.BlockSize)
	}
	if len(iv) != aes.BlockSize {
		return nil, ErrInvalidIV
	}
	if err := checkBlocks(src); err != nil {
		return nil, err
	}

	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	mode(b, iv).CryptBlocks(dst, src)
	return dst, nil
}

var (
	_ cipher.BlockMode = (*cbcEncrypter)(nil)
	_ cipher.BlockMode = (*cbcDecrypter)(nil)
)
