package attack

import (
	"fmt"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/internal/mem"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/oracle"
	"github.com/codahale/aesbreak/pkcs7"
)

// PaddingOracle decrypts a CBC ciphertext using only a padding oracle. See Options.PaddingOracle.
func PaddingOracle(o oracle.PaddingChecker, iv, ciphertext []byte) ([]byte, error) {
	return Options{}.PaddingOracle(o, iv, ciphertext)
}

// PaddingOracle decrypts ciphertext, encrypted with CBC under iv, using nothing but o. It solves each block
// independently with DecryptBlock and returns the plaintext with its padding removed.
func (opts Options) PaddingOracle(o oracle.PaddingChecker, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != aes.BlockSize {
		return nil, modes.ErrInvalidIV
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, modes.ErrInvalidLength
	}

	plaintext := make([]byte, 0, len(ciphertext))
	prev := iv
	for i, block := range mem.Blocks(ciphertext, aes.BlockSize) {
		state, err := opts.DecryptBlock(o, block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		mem.XOR(state[:], state[:], prev)
		plaintext = append(plaintext, state[:]...)
		prev = block
	}

	unpadded, err := pkcs7.Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("recovered plaintext is not padded: %w", ErrOracleContract)
	}
	return unpadded, nil
}

// DecryptBlock returns the intermediate state of a single ciphertext block: its raw block cipher decryption, before
// the XOR with the previous ciphertext block. See Options.DecryptBlock.
func DecryptBlock(o oracle.PaddingChecker, block []byte) (aes.Block, error) {
	return Options{}.DecryptBlock(o, block)
}

// DecryptBlock recovers the intermediate state of block by forging IVs for it. Working from the last byte backward,
// it solves for each pad length p in 1..16 by fixing the already-solved bytes of the forged IV to produce p and
// searching for the value of the next byte which makes o accept the padding.
//
// A match for p=1 is ambiguous: the plaintext might instead end in 0x02 0x02 (or 0x03 0x03 0x03, etc). Such a match is
// confirmed by also corrupting the second-to-last byte, which only a true 0x01 pad survives.
func (opts Options) DecryptBlock(o oracle.PaddingChecker, block []byte) (aes.Block, error) {
	var state aes.Block
	if len(block) != aes.BlockSize {
		return state, modes.ErrInvalidLength
	}

	for p := 1; p <= aes.BlockSize; p++ {
		pos := aes.BlockSize - p

		c, err := opts.search(func(c byte) (bool, error) {
			var forged aes.Block
			for j := pos + 1; j < aes.BlockSize; j++ {
				forged[j] = state[j] ^ byte(p)
			}
			forged[pos] = c

			if !o.CheckPadding(forged[:], block) {
				return false, nil
			}

			if p == 1 {
				forged[pos-1] ^= 0xff
				return o.CheckPadding(forged[:], block), nil
			}
			return true, nil
		})
		if err != nil {
			return state, fmt.Errorf("byte %d: %w", pos, err)
		}
		state[pos] = c ^ byte(p)
	}

	return state, nil
}
