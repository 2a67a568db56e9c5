package oracle

import (
	"io"
	"slices"
	"sync"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

// ModeGuesser encrypts each input under a fresh random key, wrapped in 5 to 10 random bytes on either side. A coin
// flip picks ECB or CBC (with a random IV) for each call.
//
// Unlike the other victims, a ModeGuesser is deliberately non-deterministic.
type ModeGuesser struct {
	mu   sync.Mutex
	rand io.Reader
	last modes.Mode
}

// NewModeGuesser returns a ModeGuesser which reads all of its randomness from rand.
func NewModeGuesser(rand io.Reader) *ModeGuesser {
	return &ModeGuesser{rand: rand}
}

func (g *ModeGuesser) Encrypt(input []byte) []byte {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := newKey(g.rand)
	before := random(g.rand, 5+randomIntn(g.rand, 6))
	after := random(g.rand, 5+randomIntn(g.rand, 6))
	ciphertext := pkcs7.Pad(nil, slices.Concat(before, input, after), aes.BlockSize)

	if random(g.rand, 1)[0]&1 == 0 {
		g.last = modes.ECB
		modes.NewECBEncrypter(b).CryptBlocks(ciphertext, ciphertext)
	} else {
		g.last = modes.CBC
		modes.NewCBCEncrypter(b, random(g.rand, aes.BlockSize)).CryptBlocks(ciphertext, ciphertext)
	}
	return ciphertext
}

// Last returns the mode used by the most recent call to Encrypt.
func (g *ModeGuesser) Last() modes.Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

var _ Encrypter = (*ModeGuesser)(nil)
