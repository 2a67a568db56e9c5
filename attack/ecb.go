package attack

import (
	"bytes"
	"fmt"

	"github.com/codahale/aesbreak/oracle"
)

// RecoverSuffix recovers the secret suffix an ECB oracle appends to attacker input. See Options.RecoverSuffix.
func RecoverSuffix(o oracle.Encrypter) ([]byte, error) {
	return Options{}.RecoverSuffix(o)
}

// RecoverSuffix recovers the secret suffix o appends to attacker input before encrypting with ECB, one byte at a time.
// Any fixed prefix o places before the input, random or otherwise, is measured and skipped.
//
// To recover suffix byte i, it pads the input so that byte i is the last byte of a block whose other bytes are
// known (filler, then previously recovered bytes), and then tries all 256 values for that last byte until the
// ciphertext blocks match. Recovery stops at the suffix length implied by how the ciphertext length responds to the
// input length.
func (opts Options) RecoverSuffix(o oracle.Encrypter) ([]byte, error) {
	bs, err := FindBlockSize(o)
	if err != nil {
		return nil, fmt.Errorf("finding block size: %w", err)
	}

	if !IsECB(o.Encrypt(bytes.Repeat([]byte{'A'}, 3*bs))) {
		return nil, ErrNotECB
	}

	prefix, err := FindPrefix(o, bs)
	if err != nil {
		return nil, fmt.Errorf("finding prefix: %w", err)
	}

	n, err := suffixLen(o, prefix, bs)
	if err != nil {
		return nil, err
	}

	// known is bs-1 filler bytes followed by the suffix as it is recovered. The window for suffix byte i is
	// known[i:i+bs-1].
	known := make([]byte, bs-1+n)
	for i := range bs - 1 {
		known[i] = 'A'
	}

	skip := prefix.Skip()
	for i := range n {
		filler := bs - 1 - i%bs
		target := skip + (i/bs)*bs

		ciphertext := o.Encrypt(bytes.Repeat([]byte{'A'}, prefix.Align+filler))
		if len(ciphertext) < target+bs {
			return nil, fmt.Errorf("suffix byte %d: short ciphertext: %w", i, ErrOracleContract)
		}
		want := ciphertext[target : target+bs]
		window := known[i : i+bs-1]

		c, err := opts.search(func(c byte) (bool, error) {
			probe := make([]byte, prefix.Align+bs)
			for j := range prefix.Align {
				probe[j] = 'A'
			}
			copy(probe[prefix.Align:], window)
			probe[len(probe)-1] = c

			got := o.Encrypt(probe)
			if len(got) < skip+bs {
				return false, fmt.Errorf("suffix byte %d: short ciphertext: %w", i, ErrOracleContract)
			}
			return bytes.Equal(got[skip:skip+bs], want), nil
		})
		if err != nil {
			return nil, fmt.Errorf("suffix byte %d: %w", i, err)
		}
		known[bs-1+i] = c
	}

	return known[bs-1:], nil
}

// suffixLen returns the length of the suffix o appends, using the number of filler bytes it takes to add a block of
// ciphertext.
func suffixLen(o oracle.Encrypter, prefix Prefix, bs int) (int, error) {
	base := len(o.Encrypt(bytes.Repeat([]byte{'A'}, prefix.Align)))
	for k := 1; k <= bs; k++ {
		if len(o.Encrypt(bytes.Repeat([]byte{'A'}, prefix.Align+k))) > base {
			n := base - prefix.Skip() - k
			if n < 0 {
				return 0, fmt.Errorf("negative suffix length: %w", ErrOracleContract)
			}
			return n, nil
		}
	}
	return 0, fmt.Errorf("ciphertext did not grow within a block: %w", ErrOracleContract)
}
