package aes

// xtime multiplies b by x (i.e. 2) in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func xtime(b byte) byte {
	hi := b >> 7
	return b<<1 ^ hi*0x1b
}

func mul3(b byte) byte {
	return xtime(b) ^ b
}

// gmul multiplies a and b in GF(2^8).
func gmul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}
