//go:build amd64 && !purego

package aes

import "golang.org/x/sys/cpu"

var hasAES = cpu.X86.HasAES //nolint:gochecknoglobals // should only check once
