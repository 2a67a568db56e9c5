package attack

import (
	"bytes"
	"fmt"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/oracle"
)

// adminToken is the element ForgeAdmin and ForgeAdminCTR inject.
const adminToken = ";admin=true;"

// ForgeAdmin returns a CBC ciphertext from o which decrypts to a cookie containing ";admin=true;", even though o
// strips ';' and '=' from its input.
//
// It aligns two blocks of filler after o's prefix, then flips bits in the first filler block's ciphertext to turn the
// second filler block's plaintext into the token. The first filler block decrypts to garbage.
func ForgeAdmin(o oracle.Encrypter) ([]byte, error) {
	prefix, err := FindPrefix(o, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("finding prefix: %w", err)
	}

	input := bytes.Repeat([]byte{'A'}, prefix.Align+2*aes.BlockSize)
	ciphertext := o.Encrypt(input)
	if len(ciphertext) < prefix.Skip()+2*aes.BlockSize {
		return nil, fmt.Errorf("short ciphertext: %w", ErrOracleContract)
	}

	return Flip(ciphertext, prefix.Skip(), input[:len(adminToken)], []byte(adminToken)), nil
}

// ForgeAdminCTR is ForgeAdmin for a CTR oracle. Since CTR has no chaining, the token is flipped directly into place
// over filler of the same length.
func ForgeAdminCTR(o oracle.Encrypter) ([]byte, error) {
	prefix, err := FindPrefix(o, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("finding prefix: %w", err)
	}

	input := bytes.Repeat([]byte{'A'}, len(adminToken))
	ciphertext := o.Encrypt(input)
	if len(ciphertext) < prefix.Len+len(input) {
		return nil, fmt.Errorf("short ciphertext: %w", ErrOracleContract)
	}

	return Flip(ciphertext, prefix.Len, input, []byte(adminToken)), nil
}
