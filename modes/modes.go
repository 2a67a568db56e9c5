// Package modes implements the ECB, CBC, and CTR block cipher modes on top of any cipher.Block, plus key-based helpers
// which use the AES-128 implementation in package aes.
//
// None of these modes provide integrity. That is the point: package attack breaks each of them.
package modes

import (
	"errors"

	"github.com/codahale/aesbreak/aes"
)

var (
	// ErrInvalidLength is returned when a buffer which must be block-aligned is not.
	ErrInvalidLength = errors.New("aesbreak/modes: input not a multiple of the block size")

	// ErrInvalidIV is returned when an IV is not exactly one block long.
	ErrInvalidIV = errors.New("aesbreak/modes: invalid IV length")
)

func checkBlocks(src []byte) error {
	if len(src)%aes.BlockSize != 0 {
		return ErrInvalidLength
	}
	return nil
}
