package oracle

import (
	"crypto/cipher"
	"encoding/binary"
	"io"

	"github.com/codahale/aesbreak/modes"
)

// Verses are the plaintexts a FixedNonceCTR is traditionally run over.
//
//nolint:gochecknoglobals // fixed test corpus
var Verses = []string{
	"I have met them at close of day",
	"Coming with vivid faces",
	"From counter or desk among grey",
	"Eighteenth-century houses.",
	"I have passed with a nod of the head",
	"Or polite meaningless words,",
	"Or have lingered awhile and said",
	"Polite meaningless words,",
	"And thought before I had done",
	"Of a mocking tale or a gibe",
	"To please a companion",
	"Around the fire at the club,",
	"Being certain that they and I",
	"But lived where motley is worn:",
	"All changed, changed utterly:",
	"A terrible beauty is born.",
	"That woman's days were spent",
	"In ignorant good will,",
	"Her nights in argument",
	"Until her voice grew shrill.",
	"What voice more sweet than hers",
	"When young and beautiful,",
	"She rode to harriers?",
	"This man had kept a school",
	"And rode our winged horse.",
	"This other his helper and friend",
	"Was coming into his force;",
	"He might have won fame in the end,",
	"So sensitive his nature seemed,",
	"So daring and sweet his thought.",
	"This other man I had dreamed",
	"A drunken, vain-glorious lout.",
	"He had done most bitter wrong",
	"To some who are near my heart,",
	"Yet I number him in the song;",
	"He, too, has resigned his part",
	"In the casual comedy;",
	"He, too, has been changed in his turn,",
	"Transformed utterly:",
	"A terrible beauty is born.",
}

// FixedNonceCTR encrypts every message with AES-128-CTR under the same key and nonce, so all of its ciphertexts share
// one keystream.
type FixedNonceCTR struct {
	b     cipher.Block
	nonce uint64
}

// NewFixedNonceCTR returns a FixedNonceCTR with a fresh key and nonce read from rand.
func NewFixedNonceCTR(rand io.Reader) *FixedNonceCTR {
	return &FixedNonceCTR{
		b:     newKey(rand),
		nonce: binary.LittleEndian.Uint64(random(rand, 8)),
	}
}

func (s *FixedNonceCTR) Encrypt(plaintext []byte) []byte {
	ciphertext := make([]byte, len(plaintext))
	modes.NewCTR(s.b, s.nonce, binary.LittleEndian).XORKeyStream(ciphertext, plaintext)
	return ciphertext
}

var _ Encrypter = (*FixedNonceCTR)(nil)
