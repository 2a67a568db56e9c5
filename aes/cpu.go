package aes

// HardwareAccelerated reports whether the CPU has AES instructions. This package does not use them.
func HardwareAccelerated() bool {
	return hasAES
}
