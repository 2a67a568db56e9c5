package aes //nolint:testpackage // testing round internals

import (
	"encoding/hex"
	"testing"
)

func TestGF(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		// FIPS 197 section 4.2
		{0x57, 0x83, 0xc1},
		{0x57, 0x13, 0xfe},
		{0x57, 0x02, 0xae},
		{0x00, 0x02, 0x00},
		{0x81, 0x02, 0x19},
		{0xff, 0x02, 0xe5},
	}

	for _, tt := range tests {
		if got := gmul(tt.a, tt.b); got != tt.want {
			t.Errorf("gmul(%#02x, %#02x) = %#02x, want = %#02x", tt.a, tt.b, got, tt.want)
		}
	}

	for i := range 256 {
		b := byte(i)
		if got, want := xtime(b), gmul(b, 2); got != want {
			t.Errorf("xtime(%#02x) = %#02x, want = %#02x", b, got, want)
		}
		if got, want := mul3(b), gmul(b, 3); got != want {
			t.Errorf("mul3(%#02x) = %#02x, want = %#02x", b, got, want)
		}
	}
}

func TestSbox(t *testing.T) {
	if got, want := sbox[0x00], byte(0x63); got != want {
		t.Errorf("sbox[0x00] = %#02x, want = %#02x", got, want)
	}
	if got, want := sbox[0x53], byte(0xed); got != want {
		t.Errorf("sbox[0x53] = %#02x, want = %#02x", got, want)
	}

	seen := make(map[byte]bool, 256)
	for i := range 256 {
		b := byte(i)
		if got := invSbox[sbox[b]]; got != b {
			t.Errorf("invSbox[sbox[%#02x]] = %#02x", b, got)
		}
		seen[sbox[b]] = true
	}
	if len(seen) != 256 {
		t.Errorf("sbox is not a permutation: %d distinct outputs", len(seen))
	}
}

func TestSboxConstruction(t *testing.T) {
	// The S-box is the multiplicative inverse in GF(2^8) followed by an affine transform.
	rotl := func(b byte, n int) byte { return b<<n | b>>(8-n) }
	for i := range 256 {
		b := byte(i)
		inv := byte(0)
		if b != 0 {
			// b^254 = b^-1
			inv = 1
			for range 254 {
				inv = gmul(inv, b)
			}
		}

		want := inv ^ rotl(inv, 1) ^ rotl(inv, 2) ^ rotl(inv, 3) ^ rotl(inv, 4) ^ 0x63
		if got := sbox[b]; got != want {
			t.Errorf("sbox[%#02x] = %#02x, want = %#02x", b, got, want)
		}
	}
}

func TestEncRound(t *testing.T) {
	tests := []struct {
		name             string
		state, key       string
		round, lastRound string
	}{
		{
			// SubBytes(0) = 0x63 and a column of equal bytes is fixed by MixColumns.
			name:      "zero",
			state:     "00000000000000000000000000000000",
			key:       "00000000000000000000000000000000",
			round:     "63636363636363636363636363636363",
			lastRound: "63636363636363636363636363636363",
		},
		{
			// FIPS 197 Appendix B, rounds 1 and 10.
			name:      "fips 197",
			state:     "193de3bea0f4e22b9ac68d2ae9f84808",
			key:       "a0fafe1788542cb123a339392a6c7605",
			round:     "a49c7ff2689f352b6b5bea43026a5049",
			lastRound: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encRound(mustBlock(tt.state), mustBlock(tt.key))
			if got := hex.EncodeToString(got[:]); got != tt.round {
				t.Errorf("encRound() = %s, want = %s", got, tt.round)
			}

			if tt.lastRound != "" {
				got := encLastRound(mustBlock(tt.state), mustBlock(tt.key))
				if got := hex.EncodeToString(got[:]); got != tt.lastRound {
					t.Errorf("encLastRound() = %s, want = %s", got, tt.lastRound)
				}
			}
		})
	}

	state := mustBlock("eb40f21e592e38848ba113e71bc342d2")
	last := encLastRound(state, mustBlock("d014f9a8c9ee2589e13f0cc8b6630ca6"))
	if got, want := hex.EncodeToString(last[:]), "3925841d02dc09fbdc118597196a0b32"; got != want {
		t.Errorf("encLastRound() = %s, want = %s", got, want)
	}
}

func TestShiftRows(t *testing.T) {
	state := mustBlock("c9afd4f2fbdac9b692aad759f56b436a")

	shifted := shiftRows(state)
	if got, want := hex.EncodeToString(shifted[:]), "c9dad76afbaa43f2926bd4b6f5afc959"; got != want {
		t.Errorf("shiftRows() = %s, want = %s", got, want)
	}

	if got := invShiftRows(shifted); got != state {
		t.Errorf("invShiftRows(shiftRows(x)) = %x, want = %x", got, state)
	}
}

func TestMixColumns(t *testing.T) {
	t.Run("known columns", func(t *testing.T) {
		state := mustBlock("db135345f20a225c01010101c6c6c6c6")
		mixed := mixColumns(state)
		if got, want := hex.EncodeToString(mixed[:]), "8e4da1bc9fdc589d01010101c6c6c6c6"; got != want {
			t.Errorf("mixColumns() = %s, want = %s", got, want)
		}
	})

	t.Run("inverse", func(t *testing.T) {
		state := mustBlock("0102030405060708090a0b0c0d0e0f10")
		if got := invMixColumns(mixColumns(state)); got != state {
			t.Errorf("invMixColumns(mixColumns(x)) = %x, want = %x", got, state)
		}
	})
}

func TestAddRoundKey(t *testing.T) {
	state := Block{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	key := Block{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 1}
	want := Block{3, 1, 7, 1, 3, 1, 15, 1, 3, 1, 7, 1, 3, 1, 31, 17}

	if got := addRoundKey(state, key); got != want {
		t.Errorf("addRoundKey() = %v, want = %v", got, want)
	}
	if got := addRoundKey(addRoundKey(state, key), key); got != state {
		t.Errorf("addRoundKey is not self-inverse: %v", got)
	}
}

func TestExpandKey(t *testing.T) {
	tests := []struct {
		key   string
		round int
		want  string
	}{
		{"SOME 128 BIT KEY", 1, "e12186f2c110b4cae152fd9ec119b8c7"},
		{"Thats my Kung Fu", 1, "e232fcf191129188b159e4e6d679a293"},
	}

	for _, tt := range tests {
		s := ExpandKey(Block([]byte(tt.key)))
		if got := hex.EncodeToString(s[tt.round][:]); got != tt.want {
			t.Errorf("ExpandKey(%q)[%d] = %s, want = %s", tt.key, tt.round, got, tt.want)
		}
	}

	// FIPS 197 Appendix A.1
	s := ExpandKey(mustBlock("2b7e151628aed2a6abf7158809cf4f3c"))
	if got, want := hex.EncodeToString(s[Rounds][:]), "d014f9a8c9ee2589e13f0cc8b6630ca6"; got != want {
		t.Errorf("ExpandKey()[10] = %s, want = %s", got, want)
	}
}

func mustBlock(s string) Block {
	var b Block
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		panic(err)
	}
	return b
}
