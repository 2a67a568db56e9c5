package attack

import (
	"bytes"
	"fmt"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/internal/mem"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/oracle"
)

// maxBlockSizeProbe is the longest input FindBlockSize will try.
const maxBlockSizeProbe = 128

// IsECB reports whether ciphertext contains a repeated 16-byte block.
func IsECB(ciphertext []byte) bool {
	seen := make(map[aes.Block]struct{})
	for _, b := range mem.Blocks(ciphertext, aes.BlockSize) {
		if _, ok := seen[aes.Block(b)]; ok {
			return true
		}
		seen[aes.Block(b)] = struct{}{}
	}
	return false
}

// DetectMode guesses whether o encrypts with ECB or CBC. Three blocks of identical input leave at least two aligned
// identical blocks whatever the oracle prepends, and only ECB maps them to identical ciphertext blocks.
func DetectMode(o oracle.Encrypter) modes.Mode {
	if IsECB(o.Encrypt(bytes.Repeat([]byte{'A'}, 3*aes.BlockSize))) {
		return modes.ECB
	}
	return modes.CBC
}

// FindBlockSize feeds o runs of 1 to 128 identical bytes and returns the distance between the first two input lengths
// at which the ciphertext grows. For a padded block mode that is the block size. This deliberately differs from
// waiting for the leading ciphertext block to stop changing, which misreads oracles that prepend their own prefix.
func FindBlockSize(o oracle.Encrypter) (int, error) {
	var (
		jumps [2]int
		found int
	)

	last := len(o.Encrypt(nil))
	for n := 1; n <= maxBlockSizeProbe && found < len(jumps); n++ {
		size := len(o.Encrypt(bytes.Repeat([]byte{'A'}, n)))
		switch {
		case size < last:
			return 0, fmt.Errorf("ciphertext shrank from %d to %d bytes at input length %d: %w", last, size, n,
				ErrOracleContract)
		case size > last:
			if found > 0 && size-last != n-jumps[0] {
				return 0, fmt.Errorf("ciphertext grew by %d bytes over %d input bytes: %w", size-last, n-jumps[0],
					ErrOracleContract)
			}
			jumps[found] = n
			found++
			last = size
		}
	}

	if found < len(jumps) {
		return 0, fmt.Errorf("ciphertext did not grow twice within %d bytes: %w", maxBlockSizeProbe, ErrExhausted)
	}
	return jumps[1] - jumps[0], nil
}

// Prefix describes where an oracle places attacker input.
type Prefix struct {
	// Len is the number of bytes the oracle places before the input.
	Len int
	// Align is the number of filler bytes needed to push the input onto a block boundary.
	Align int
}

// Skip returns the offset of the first block wholly controlled by an input which starts with Align filler bytes.
func (p Prefix) Skip() int {
	return p.Len + p.Align
}

// FindPrefix measures the unknown prefix o places before attacker input. It encrypts pairs of inputs which differ
// only in their last byte, with 0 to blockSize filler bytes before it, and finds the filler length at which the first
// differing ciphertext block moves forward: at that point the differing byte has just crossed a block boundary.
//
// FindPrefix works for any mode in which changing a plaintext byte leaves the ciphertext before its block unchanged,
// which includes ECB, CBC, and CTR.
func FindPrefix(o oracle.Encrypter, blockSize int) (Prefix, error) {
	if blockSize < 1 {
		panic("aesbreak/attack: invalid block size")
	}

	probe := func(n int) (int, error) {
		input := bytes.Repeat([]byte{'A'}, n+1)
		input[n] = 'X'
		a := o.Encrypt(input)
		input[n] = 'Y'
		b := o.Encrypt(input)

		i := mem.CommonPrefix(a, b)
		if i == len(a) && i == len(b) {
			return 0, fmt.Errorf("ciphertext ignored a changed input byte: %w", ErrOracleContract)
		}
		return i / blockSize, nil
	}

	first, err := probe(0)
	if err != nil {
		return Prefix{}, err
	}

	for n := 1; n <= blockSize; n++ {
		block, err := probe(n)
		if err != nil {
			return Prefix{}, err
		}

		if block > first {
			prefixLen := block*blockSize - n
			return Prefix{Len: prefixLen, Align: (blockSize - prefixLen%blockSize) % blockSize}, nil
		}
	}

	return Prefix{}, fmt.Errorf("input never crossed a block boundary: %w", ErrExhausted)
}
