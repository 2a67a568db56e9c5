package aes

// rcon holds the leading byte of each round constant word. rcon[0] is unused.
var rcon = [Rounds + 1]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36} //nolint:gochecknoglobals // fixed table

// A Schedule is the sequence of round keys derived from a single key. Round key 0 is the key itself.
type Schedule [Rounds + 1]Block

// ExpandKey derives the AES-128 key schedule for the given key.
func ExpandKey(key Block) Schedule {
	var s Schedule
	s[0] = key
	for i := 1; i <= Rounds; i++ {
		prev, cur := &s[i-1], &s[i]

		// The first word is SubWord(RotWord(last word of the previous round)) ^ Rcon ^ first word of the previous round.
		w := subWord(rotWord([4]byte(prev[12:16])))
		w[0] ^= rcon[i]
		for j := range 4 {
			cur[j] = w[j] ^ prev[j]
		}

		// Each following word is the previous round's word XOR the word just computed.
		for j := 4; j < BlockSize; j++ {
			cur[j] = prev[j] ^ cur[j-4]
		}
	}
	return s
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}
