// Package aes implements the AES-128 block cipher from its published definition: GF(2^8) arithmetic, the S-box, the
// four round transforms, and the key schedule.
//
// This is a reference implementation intended as the target of the attacks in package attack. It is not constant
// time and makes no attempt to resist side channels. For anything else, use crypto/aes.
package aes

import (
	"crypto/cipher"
	"strconv"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// KeySize is the AES-128 key size in bytes.
	KeySize = 16
	// Rounds is the number of AES-128 rounds.
	Rounds = 10
)

// A Block is a single 16-byte AES block. Interpreted as a state, it is a 4x4 byte matrix in column-major order.
type Block = [BlockSize]byte

// EncryptBlock expands key and encrypts a single block with it.
func EncryptBlock(block, key Block) Block {
	s := ExpandKey(key)
	return s.Encrypt(block)
}

// DecryptBlock expands key and decrypts a single block with it.
func DecryptBlock(block, key Block) Block {
	s := ExpandKey(key)
	return s.Decrypt(block)
}

// Encrypt encrypts a single block using the expanded key.
func (s *Schedule) Encrypt(state Block) Block {
	state = addRoundKey(state, s[0])
	for round := 1; round < Rounds; round++ {
		state = encRound(state, s[round])
	}
	return encLastRound(state, s[Rounds])
}

// Decrypt decrypts a single block using the expanded key.
func (s *Schedule) Decrypt(state Block) Block {
	state = addRoundKey(state, s[Rounds])
	state = invShiftRows(state)
	state = invSubBytes(state)
	for round := Rounds - 1; round > 0; round-- {
		state = addRoundKey(state, s[round])
		state = invMixColumns(state)
		state = invShiftRows(state)
		state = invSubBytes(state)
	}
	return addRoundKey(state, s[0])
}

// KeySizeError is returned by NewCipher for keys which are not exactly KeySize bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aesbreak/aes: invalid key size " + strconv.Itoa(int(k))
}

// NewCipher returns a cipher.Block which encrypts and decrypts with the given 16-byte key.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	return &blockCipher{s: ExpandKey(Block(key))}, nil
}

type blockCipher struct {
	s Schedule
}

func (c *blockCipher) BlockSize() int {
	return BlockSize
}

func (c *blockCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesbreak/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesbreak/aes: output not full block")
	}
	out := c.s.Encrypt(Block(src[:BlockSize]))
	copy(dst, out[:])
}

func (c *blockCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesbreak/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesbreak/aes: output not full block")
	}
	out := c.s.Decrypt(Block(src[:BlockSize]))
	copy(dst, out[:])
}

var _ cipher.Block = (*blockCipher)(nil)
