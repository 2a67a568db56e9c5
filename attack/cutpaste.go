package attack

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/codahale/aesbreak/oracle"
	"github.com/codahale/aesbreak/pkcs7"
)

// profileTail is what a profile oracle places between the email address and the role value.
const profileTail = "&uid=10&role="

// CutAndPaste forges an encrypted "role=admin" profile from an ECB profile oracle, using only encryptions of email
// addresses of its choosing.
//
// It encrypts one address which places a padded "admin" block on a block boundary, and another which pushes the role
// value into a block of its own. The second ciphertext, cut before the role value, is then completed with the first's
// "admin" block.
func CutAndPaste(o oracle.Encrypter) ([]byte, error) {
	bs, err := FindBlockSize(o)
	if err != nil {
		return nil, fmt.Errorf("finding block size: %w", err)
	}

	prefix, err := FindPrefix(o, bs)
	if err != nil {
		return nil, fmt.Errorf("finding prefix: %w", err)
	}

	admin := slices.Concat(bytes.Repeat([]byte{'a'}, prefix.Align), pkcs7.Pad(nil, []byte("admin"), bs))
	adminCiphertext := o.Encrypt(admin)
	if len(adminCiphertext) < prefix.Skip()+bs {
		return nil, fmt.Errorf("short ciphertext: %w", ErrOracleContract)
	}

	n := (bs - (prefix.Len+len(profileTail))%bs) % bs
	cut := prefix.Len + n + len(profileTail)
	ciphertext := o.Encrypt(bytes.Repeat([]byte{'a'}, n))
	if len(ciphertext) < cut {
		return nil, fmt.Errorf("short ciphertext: %w", ErrOracleContract)
	}

	return slices.Concat(ciphertext[:cut], adminCiphertext[prefix.Skip():prefix.Skip()+bs]), nil
}
