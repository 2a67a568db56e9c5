// Package testdata provides a deterministic random bit generator for tests, fuzz seeds, and examples.
package testdata

import (
	"crypto/sha3"

	"github.com/gtank/ristretto255"
)

// DRBG is a deterministic random bit generator based on SHAKE128. It implements io.Reader and never fails.
type DRBG struct {
	shake *sha3.SHAKE
}

// New returns a DRBG seeded with the given label.
func New(label string) *DRBG {
	shake := sha3.NewSHAKE128()
	_, _ = shake.Write([]byte(label))
	return &DRBG{shake: shake}
}

// Read fills p with pseudorandom data.
func (d *DRBG) Read(p []byte) (n int, err error) {
	return d.shake.Read(p)
}

// Data returns n bytes of pseudorandom data.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.shake.Read(b)
	return b
}

// Block returns a pseudorandom 16-byte block.
func (d *DRBG) Block() [16]byte {
	var b [16]byte
	_, _ = d.shake.Read(b[:])
	return b
}

// Intn returns a pseudorandom int in [0, n). It panics if n <= 0.
func (d *DRBG) Intn(n int) int {
	if n <= 0 {
		panic("testdata: invalid argument to Intn")
	}
	var b [8]byte
	_, _ = d.shake.Read(b[:])
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return int(v % uint64(n)) //nolint:gosec // n > 0, result < n
}

// KeyPair returns a pseudorandom Ristretto255 private key and its public key.
func (d *DRBG) KeyPair() (*ristretto255.Scalar, *ristretto255.Element) {
	var r [64]byte
	_, _ = d.shake.Read(r[:])
	s, _ := ristretto255.NewScalar().SetUniformBytes(r[:])
	return s, ristretto255.NewIdentityElement().ScalarBaseMult(s)
}
