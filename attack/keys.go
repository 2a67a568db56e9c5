package attack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/internal/mem"
	"github.com/codahale/aesbreak/oracle"
)

// An IVKeyOracle encrypts with CBC using its key as the IV, and leaks the plaintext of messages it rejects.
type IVKeyOracle interface {
	oracle.Encrypter
	Check(ciphertext []byte) error
}

// RecoverIVKey recovers the key of a CBC oracle which uses its key as the IV.
//
// Given a ciphertext C1 C2 C3, it submits C1 0 C1. The first plaintext block is D(C1) ^ key and the third is D(C1) ^ 0,
// so their XOR is the key. The oracle rejects the scrambled message and leaks both.
func RecoverIVKey(o IVKeyOracle) (aes.Block, error) {
	var key aes.Block

	ciphertext := o.Encrypt(bytes.Repeat([]byte{'A'}, 3*aes.BlockSize))
	if len(ciphertext) < 3*aes.BlockSize {
		return key, fmt.Errorf("short ciphertext: %w", ErrOracleContract)
	}

	forged := make([]byte, 3*aes.BlockSize)
	copy(forged, ciphertext[:aes.BlockSize])
	copy(forged[2*aes.BlockSize:], ciphertext[:aes.BlockSize])

	var leak *oracle.HighASCIIError
	if err := o.Check(forged); !errors.As(err, &leak) {
		return key, fmt.Errorf("forged ciphertext was not rejected with its plaintext: %w", ErrOracleContract)
	}
	if len(leak.Plaintext) < 3*aes.BlockSize {
		return key, fmt.Errorf("short plaintext: %w", ErrOracleContract)
	}

	mem.XOR(key[:], leak.Plaintext[:aes.BlockSize], leak.Plaintext[2*aes.BlockSize:3*aes.BlockSize])
	return key, nil
}

// An Editor holds a CTR ciphertext and re-encrypts it after in-place plaintext edits.
type Editor interface {
	Ciphertext() []byte
	Edit(offset int, newtext []byte) ([]byte, error)
}

// RecoverCTREdit recovers the plaintext held by a CTR Editor. Overwriting the whole plaintext with zeros makes the
// editor return its keystream, which decrypts the original ciphertext.
func RecoverCTREdit(o Editor) ([]byte, error) {
	ciphertext := o.Ciphertext()

	keystream, err := o.Edit(0, make([]byte, len(ciphertext)))
	if err != nil {
		return nil, fmt.Errorf("zeroing plaintext: %w", err)
	}
	if len(keystream) != len(ciphertext) {
		return nil, fmt.Errorf("edit changed the ciphertext length: %w", ErrOracleContract)
	}

	plaintext := make([]byte, len(ciphertext))
	mem.XOR(plaintext, ciphertext, keystream)
	return plaintext, nil
}
