package mem_test

import (
	"bytes"
	"testing"

	"github.com/codahale/aesbreak/internal/mem"
)

func TestXOR(t *testing.T) {
	for _, n := range []int{0, 1, 16, 17, 100} {
		a, b := bytes.Repeat([]byte{0x0f}, n), bytes.Repeat([]byte{0xf1}, n)
		dst := make([]byte, n)
		mem.XOR(dst, a, b)
		if got, want := dst, bytes.Repeat([]byte{0xfe}, n); !bytes.Equal(got, want) {
			t.Errorf("XOR(%d) = %x, want = %x", n, got, want)
		}
	}
}

func TestSliceForAppend(t *testing.T) {
	in := make([]byte, 3, 10)
	head, tail := mem.SliceForAppend(in, 5)
	if got, want := len(head), 8; got != want {
		t.Errorf("len(head) = %d, want = %d", got, want)
	}
	if got, want := len(tail), 5; got != want {
		t.Errorf("len(tail) = %d, want = %d", got, want)
	}
	if &head[0] != &in[0] {
		t.Error("SliceForAppend allocated despite sufficient capacity")
	}
}

func TestBlocks(t *testing.T) {
	blocks := mem.Blocks([]byte("aaaabbbbcc"), 4)
	if got, want := len(blocks), 2; got != want {
		t.Fatalf("len(Blocks()) = %d, want = %d", got, want)
	}
	if got, want := string(blocks[1]), "bbbb"; got != want {
		t.Errorf("Blocks()[1] = %q, want = %q", got, want)
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abd", 2},
		{"abc", "abcdef", 3},
		{"xbc", "abc", 0},
	}

	for _, tt := range tests {
		if got := mem.CommonPrefix([]byte(tt.a), []byte(tt.b)); got != tt.want {
			t.Errorf("CommonPrefix(%q, %q) = %d, want = %d", tt.a, tt.b, got, tt.want)
		}
	}
}
