// Package pkcs7 implements PKCS#7 padding for 16-byte block ciphers.
package pkcs7

import (
	"errors"

	"github.com/codahale/aesbreak/internal/mem"
)

// BlockSize is the block size Unpad and Valid check against.
const BlockSize = 16

// ErrInvalidPadding is returned when a buffer is not validly padded.
var ErrInvalidPadding = errors.New("aesbreak/pkcs7: invalid padding")

// Pad appends src padded to a multiple of blockSize to dst and returns the resulting slice. A block-aligned src gets a
// full block of padding.
//
// Pad panics if blockSize is not in [1, 255].
func Pad(dst, src []byte, blockSize int) []byte {
	if blockSize < 1 || blockSize > 255 {
		panic("aesbreak/pkcs7: invalid block size")
	}

	n := blockSize - len(src)%blockSize
	ret, out := mem.SliceForAppend(dst, len(src)+n)
	copy(out, src)
	for i := len(src); i < len(out); i++ {
		out[i] = byte(n)
	}
	return ret
}

// Unpad returns src without its padding, aliasing src. It returns ErrInvalidPadding if src is empty, not a multiple of
// BlockSize, or does not end in N bytes of value N for some N in [1, BlockSize].
func Unpad(src []byte) ([]byte, error) {
	if len(src) == 0 || len(src)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(src[len(src)-1])
	if n < 1 || n > BlockSize {
		return nil, ErrInvalidPadding
	}

	for _, b := range src[len(src)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return src[:len(src)-n], nil
}

// Valid reports whether src is validly padded.
func Valid(src []byte) bool {
	_, err := Unpad(src)
	return err == nil
}
