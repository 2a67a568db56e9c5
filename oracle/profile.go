package oracle

import (
	"crypto/cipher"
	"errors"
	"io"
	"strings"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

// ErrMalformedProfile is returned when a decrypted profile is not a well-formed k=v cookie.
var ErrMalformedProfile = errors.New("aesbreak/oracle: malformed profile")

// ProfileFor encodes a user profile for the given email address as a k=v cookie. The '&' and '=' metacharacters are
// stripped from the address.
func ProfileFor(email string) string {
	email = strings.NewReplacer("&", "", "=", "").Replace(email)
	return "email=" + email + "&uid=10&role=user"
}

// ParseProfile parses a k=v cookie into its fields.
func ParseProfile(cookie string) (map[string]string, error) {
	fields := make(map[string]string)
	for pair := range strings.SplitSeq(cookie, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, ErrMalformedProfile
		}
		fields[k] = v
	}
	return fields, nil
}

// ProfileStore encrypts user profiles with AES-128-ECB under a random key.
type ProfileStore struct {
	b cipher.Block
}

// NewProfileStore returns a ProfileStore with a fresh key read from rand.
func NewProfileStore(rand io.Reader) *ProfileStore {
	return &ProfileStore{b: newKey(rand)}
}

// Encrypt returns the encrypted profile for the given email address.
func (s *ProfileStore) Encrypt(email []byte) []byte {
	ciphertext := pkcs7.Pad(nil, []byte(ProfileFor(string(email))), aes.BlockSize)
	modes.NewECBEncrypter(s.b).CryptBlocks(ciphertext, ciphertext)
	return ciphertext
}

// Role decrypts an encrypted profile and returns its role.
func (s *ProfileStore) Role(ciphertext []byte) (string, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", modes.ErrInvalidLength
	}

	plaintext := make([]byte, len(ciphertext))
	modes.NewECBDecrypter(s.b).CryptBlocks(plaintext, ciphertext)
	plaintext, err := pkcs7.Unpad(plaintext)
	if err != nil {
		return "", err
	}

	fields, err := ParseProfile(string(plaintext))
	if err != nil {
		return "", err
	}
	role, ok := fields["role"]
	if !ok {
		return "", ErrMalformedProfile
	}
	return role, nil
}

var _ Encrypter = (*ProfileStore)(nil)
