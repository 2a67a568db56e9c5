package modes

import (
	"crypto/cipher"

	"github.com/codahale/aesbreak/aes"
)

type ecb struct {
	b         cipher.Block
	blockSize int
}

type ecbEncrypter ecb

// NewECBEncrypter returns a cipher.BlockMode which encrypts each block independently with b.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecbEncrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbEncrypter) BlockSize() int {
	return x.blockSize
}

func (x *ecbEncrypter) CryptBlocks(dst, src []byte) {
	checkCryptBlocks(dst, src, x.blockSize)
	for n := x.blockSize; len(src) > 0; {
		x.b.Encrypt(dst[:n], src[:n])
		dst, src = dst[n:], src[n:]
	}
}

type ecbDecrypter ecb

// NewECBDecrypter returns a cipher.BlockMode which decrypts each block independently with b.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbDecrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbDecrypter) BlockSize() int {
	return x.blockSize
}

func (x *ecbDecrypter) CryptBlocks(dst, src []byte) {
	checkCryptBlocks(dst, src, x.blockSize)
	for n := x.blockSize; len(src) > 0; {
		x.b.Decrypt(dst[:n], src[:n])
		dst, src = dst[n:], src[n:]
	}
}

// EncryptECB encrypts a block-aligned plaintext with AES-128 in ECB mode.
func EncryptECB(key, plaintext []byte) ([]byte, error) {
	return cryptECB(key, plaintext, NewECBEncrypter)
}

// DecryptECB decrypts a block-aligned ciphertext with AES-128 in ECB mode. Padding is left in place.
func DecryptECB(key, ciphertext []byte) ([]byte, error) {
	return cryptECB(key, ciphertext, NewECBDecrypter)
}

func cryptECB(key, src []byte, mode func(cipher.Block) cipher.BlockMode) ([]byte, error) {
	if err := checkBlocks(src); err != nil {
		return nil, err
	}

	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	mode(b).CryptBlocks(dst, src)
	return dst, nil
}

func checkCryptBlocks(dst, src []byte, blockSize int) {
	if len(src)%blockSize != 0 {
		panic("aesbreak/modes: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("aesbreak/modes: output smaller than input")
	}
}

var (
	_ cipher.BlockMode = (*ecbEncrypter)(nil)
	_ cipher.BlockMode = (*ecbDecrypter)(nil)
)
