// Package attack implements oracle-driven cryptanalysis of unauthenticated AES modes: mode and block size detection,
// byte-at-a-time ECB decryption, ECB cut-and-paste, CBC and CTR bit-flipping, the CBC padding oracle attack, breaking
// fixed-nonce CTR, and key recovery from CBC with IV=key.
//
// Attacks see nothing but what their oracle returns. Oracles are treated as read-only and may be queried from several
// goroutines at once when Options.Workers is greater than one.
package attack

import (
	"errors"
	"sync"
)

var (
	// ErrExhausted is returned when an attack tries every candidate for some position without finding a match.
	ErrExhausted = errors.New("aesbreak/attack: candidate search exhausted")

	// ErrOracleContract is returned when an oracle's output is inconsistent with what it was asked to do.
	ErrOracleContract = errors.New("aesbreak/attack: oracle contract violated")

	// ErrNotECB is returned by attacks which require an ECB oracle when given something else.
	ErrNotECB = errors.New("aesbreak/attack: oracle does not use ECB")
)

// Options configures the candidate searches of RecoverSuffix and PaddingOracle. The zero value is a synchronous,
// single-goroutine search.
type Options struct {
	// Workers is the number of goroutines testing the 256 candidates for a single byte. Positions are always solved in
	// order.
	Workers int
}

// search returns the lowest byte for which try reports a match, or ErrExhausted if there is none.
func (opts Options) search(try func(c byte) (bool, error)) (byte, error) {
	workers := min(max(opts.Workers, 1), 256)
	if workers == 1 {
		for c := range 256 {
			ok, err := try(byte(c))
			if err != nil {
				return 0, err
			}
			if ok {
				return byte(c), nil
			}
		}
		return 0, ErrExhausted
	}

	var (
		wg    sync.WaitGroup
		found [256]bool
		errs  [256]error
	)
	for w := range workers {
		wg.Go(func() {
			for c := w; c < 256; c += workers {
				found[c], errs[c] = try(byte(c))
			}
		})
	}
	wg.Wait()

	for c := range 256 {
		if errs[c] != nil {
			return 0, errs[c]
		}
		if found[c] {
			return byte(c), nil
		}
	}
	return 0, ErrExhausted
}

// Flip returns a copy of ciphertext in which the bytes at offset have been XORed with have^want. Against CTR this turns
// plaintext have into want at the same offset; against CBC it does so one block later, scrambling the block at offset.
//
// Flip panics if have and want differ in length or extend past the end of ciphertext.
func Flip(ciphertext []byte, offset int, have, want []byte) []byte {
	if len(have) != len(want) {
		panic("aesbreak/attack: mismatched flip lengths")
	}

	out := append([]byte(nil), ciphertext...)
	for i := range have {
		out[offset+i] ^= have[i] ^ want[i]
	}
	return out
}
