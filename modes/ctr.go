package modes

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/internal/mem"
)

// CounterBlock returns the keystream input for the given nonce and block counter: the nonce and the counter, each
// encoded as 8 bytes in the given byte order.
func CounterBlock(nonce, counter uint64, order binary.ByteOrder) aes.Block {
	var in aes.Block
	order.PutUint64(in[:8], nonce)
	order.PutUint64(in[8:], counter)
	return in
}

type ctr struct {
	b       cipher.Block
	order   binary.ByteOrder
	nonce   uint64
	counter uint64
	ks      aes.Block
	used    int
}

// NewCTR returns a cipher.Stream which XORs data with the keystream E(nonce || counter), starting with counter 0. The
// nonce and counter halves are encoded in the given byte order.
//
// NewCTR panics if b does not have a 16-byte block size.
func NewCTR(b cipher.Block, nonce uint64, order binary.ByteOrder) cipher.Stream {
	if b.BlockSize() != aes.BlockSize {
		panic("aesbreak/modes: CTR requires a 16-byte block cipher")
	}
	return &ctr{
		b:     b,
		order: order,
		nonce: nonce,
		used:  aes.BlockSize,
	}
}

func (x *ctr) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("aesbreak/modes: output smaller than input")
	}

	for len(src) > 0 {
		if x.used == len(x.ks) {
			x.refill()
		}
		n := min(len(src), len(x.ks)-x.used)
		mem.XOR(dst[:n], src[:n], x.ks[x.used:x.used+n])
		x.used += n
		dst, src = dst[n:], src[n:]
	}
}

func (x *ctr) refill() {
	in := CounterBlock(x.nonce, x.counter, x.order)
	x.b.Encrypt(x.ks[:], in[:])
	x.counter++
	x.used = 0
}

// CryptCTR encrypts or decrypts src with AES-128 in CTR mode, using a little-endian nonce and counter. Encryption and
// decryption are the same operation.
func CryptCTR(key []byte, nonce uint64, src []byte) ([]byte, error) {
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	NewCTR(b, nonce, binary.LittleEndian).XORKeyStream(dst, src)
	return dst, nil
}

var _ cipher.Stream = (*ctr)(nil)
