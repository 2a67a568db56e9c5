package aes

// encRound is a full encryption round, equivalent to the AESENC instruction.
func encRound(state, roundKey Block) Block {
	return addRoundKey(mixColumns(shiftRows(subBytes(state))), roundKey)
}

// encLastRound is the final encryption round, which omits MixColumns. It is equivalent to AESENCLAST.
func encLastRound(state, roundKey Block) Block {
	return addRoundKey(shiftRows(subBytes(state)), roundKey)
}

func addRoundKey(state, key Block) Block {
	for i := range BlockSize {
		state[i] ^= key[i]
	}
	return state
}

func subBytes(state Block) Block {
	for i, b := range state {
		state[i] = sbox[b]
	}
	return state
}

func invSubBytes(state Block) Block {
	for i, b := range state {
		state[i] = invSbox[b]
	}
	return state
}

// shiftRows rotates row r left by r positions. Byte (row r, column c) lives at state[4c+r].
func shiftRows(state Block) Block {
	var out Block
	for c := range 4 {
		for r := range 4 {
			out[4*c+r] = state[4*((c+r)%4)+r]
		}
	}
	return out
}

func invShiftRows(state Block) Block {
	var out Block
	for c := range 4 {
		for r := range 4 {
			out[4*((c+r)%4)+r] = state[4*c+r]
		}
	}
	return out
}

func mixColumns(state Block) Block {
	var out Block
	for c := 0; c < BlockSize; c += 4 {
		a0, a1, a2, a3 := state[c], state[c+1], state[c+2], state[c+3]
		out[c] = xtime(a0) ^ mul3(a1) ^ a2 ^ a3
		out[c+1] = a0 ^ xtime(a1) ^ mul3(a2) ^ a3
		out[c+2] = a0 ^ a1 ^ xtime(a2) ^ mul3(a3)
		out[c+3] = mul3(a0) ^ a1 ^ a2 ^ xtime(a3)
	}
	return out
}

// invMixColumns inverts mixColumns. The MixColumns matrix M satisfies M^4 = I, so M^3 = M^-1.
func invMixColumns(state Block) Block {
	return mixColumns(mixColumns(mixColumns(state)))
}
