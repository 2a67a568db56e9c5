package pkcs7_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/codahale/aesbreak/internal/testdata"
	"github.com/codahale/aesbreak/pkcs7"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		blockSize int
		want      string
	}{
		{"short", "123", 16, "123\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d\x0d"},
		{"empty", "", 16, string(bytes.Repeat([]byte{16}, 16))},
		{"aligned", "YELLOW SUBMARINE", 16, "YELLOW SUBMARINE" + string(bytes.Repeat([]byte{16}, 16))},
		{"challenge", "YELLOW SUBMARINE", 20, "YELLOW SUBMARINE\x04\x04\x04\x04"},
		{"one short", "YELLOW SUBMARIN", 16, "YELLOW SUBMARIN\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := pkcs7.Pad(nil, []byte(tt.in), tt.blockSize), []byte(tt.want); !bytes.Equal(got, want) {
				t.Errorf("Pad(%q, %d) = %q, want = %q", tt.in, tt.blockSize, got, want)
			}
		})
	}

	t.Run("appends", func(t *testing.T) {
		if got, want := pkcs7.Pad([]byte("iv:"), []byte("abc"), 4), []byte("iv:abc\x01"); !bytes.Equal(got, want) {
			t.Errorf("Pad() = %q, want = %q", got, want)
		}
	})

	t.Run("invalid block size", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Pad(blockSize=0) did not panic")
			}
		}()
		pkcs7.Pad(nil, nil, 0)
	})
}

func TestUnpad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{"valid", "ICE ICE BABY\x04\x04\x04\x04", "ICE ICE BABY", nil},
		{"wrong count", "ICE ICE BABY\x05\x05\x05\x05", "", pkcs7.ErrInvalidPadding},
		{"mixed", "ICE ICE BABY\x01\x02\x03\x04", "", pkcs7.ErrInvalidPadding},
		{"zero", "ICE ICE BABY\x04\x04\x04\x00", "", pkcs7.ErrInvalidPadding},
		{"too large", "ICE ICE BABY\x11\x11\x11\x11", "", pkcs7.ErrInvalidPadding},
		{"empty", "", "", pkcs7.ErrInvalidPadding},
		{"unaligned", "123", "", pkcs7.ErrInvalidPadding},
		{"full block", string(bytes.Repeat([]byte{16}, 16)), "", nil},
		{"one", "YELLOW SUBMARIN\x01", "YELLOW SUBMARIN", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pkcs7.Unpad([]byte(tt.in))
			if !errors.Is(err, tt.err) {
				t.Fatalf("Unpad(%q) err = %v, want = %v", tt.in, err, tt.err)
			}
			if err == nil && string(got) != tt.want {
				t.Errorf("Unpad(%q) = %q, want = %q", tt.in, got, tt.want)
			}
			if got, want := pkcs7.Valid([]byte(tt.in)), tt.err == nil; got != want {
				t.Errorf("Valid(%q) = %v, want = %v", tt.in, got, want)
			}
		})
	}
}

func FuzzPad(f *testing.F) {
	drbg := testdata.New("aesbreak pkcs7")
	for i := range 10 {
		f.Add(drbg.Data(i * 7))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		padded := pkcs7.Pad(nil, data, pkcs7.BlockSize)
		if len(padded)%pkcs7.BlockSize != 0 || len(padded) <= len(data) {
			t.Fatalf("Pad(%x) = %x, not block aligned", data, padded)
		}

		got, err := pkcs7.Unpad(padded)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("Unpad(Pad(%x)) = %x", data, got)
		}
	})
}
