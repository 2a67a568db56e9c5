//go:build arm64 && !purego

package aes

import "golang.org/x/sys/cpu"

var hasAES = cpu.ARM64.HasAES //nolint:gochecknoglobals // should only check once
