package attack

import (
	"errors"
	"fmt"
	"slices"

	"github.com/codahale/aesbreak/internal/mem"
)

// ErrTooFewCiphertexts is returned by BreakFixedNonceCTR when there is not enough ciphertext to score.
var ErrTooFewCiphertexts = errors.New("aesbreak/attack: too few ciphertexts")

// BreakFixedNonceCTR decrypts CTR ciphertexts which were all encrypted under the same key and nonce, and so share a
// keystream. Every ciphertext is truncated to the length of the shortest one. Each keystream byte is then found
// independently, as the key of a single-byte XOR over that column of the ciphertexts, by picking the value which makes
// the column read most like English text.
//
// Columns in which every plaintext has a letter, such as the first, may come back with the case of those letters
// inverted.
func BreakFixedNonceCTR(ciphertexts [][]byte) ([][]byte, error) {
	if len(ciphertexts) < 2 {
		return nil, fmt.Errorf("%d ciphertexts: %w", len(ciphertexts), ErrTooFewCiphertexts)
	}

	n := len(slices.MinFunc(ciphertexts, func(a, b []byte) int { return len(a) - len(b) }))
	if n == 0 {
		return nil, fmt.Errorf("empty ciphertext: %w", ErrTooFewCiphertexts)
	}

	keystream := make([]byte, n)
	column := make([]byte, len(ciphertexts))
	for i := range keystream {
		for j, ciphertext := range ciphertexts {
			column[j] = ciphertext[i]
		}
		keystream[i] = singleByteXOR(column)
	}

	plaintexts := make([][]byte, len(ciphertexts))
	for j, ciphertext := range ciphertexts {
		plaintexts[j] = make([]byte, n)
		mem.XOR(plaintexts[j], ciphertext[:n], keystream)
	}
	return plaintexts, nil
}

// singleByteXOR returns the byte which, XORed with every byte of ciphertext, scores highest as English. Ties go to
// the lowest byte.
func singleByteXOR(ciphertext []byte) byte {
	var (
		key  byte
		best float64
	)
	for c := range 256 {
		var score float64
		for _, b := range ciphertext {
			score += englishWeights[b^byte(c)]
		}
		if c == 0 || score > best {
			key, best = byte(c), score
		}
	}
	return key
}

// englishWeights scores a single byte of English text: letters by their frequency, capitals at half weight, spaces
// above all, and control or non-ASCII bytes heavily penalized.
//
//nolint:gochecknoglobals // lookup table
var englishWeights = func() (w [256]float64) {
	letters := [26]float64{
		8.497, 1.492, 2.202, 4.253, 11.162, 2.228, 2.015, 6.094, 7.546, 0.153, 1.292, 4.025, 2.406,
		6.749, 7.507, 1.929, 0.095, 7.587, 6.327, 9.356, 2.758, 0.978, 2.560, 0.150, 1.994, 0.077,
	}

	for c := range w {
		switch {
		case c == ' ':
			w[c] = 13
		case c >= 'a' && c <= 'z':
			w[c] = letters[c-'a']
		case c >= 'A' && c <= 'Z':
			w[c] = letters[c-'A'] / 2
		case c >= '0' && c <= '9':
			w[c] = 0.5
		case c < 0x20 || c > 0x7e:
			w[c] = -20
		}
	}
	for _, c := range ".,;:!?'\"-" {
		w[c] = 1
	}
	return w
}()
