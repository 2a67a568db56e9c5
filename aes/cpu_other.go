//go:build (!amd64 && !arm64) || purego

package aes

var hasAES = false //nolint:gochecknoglobals // should only check once
