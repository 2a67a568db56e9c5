package oracle

import (
	"bytes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/codahale/aesbreak/aes"
	"github.com/codahale/aesbreak/modes"
	"github.com/codahale/aesbreak/pkcs7"
)

const (
	commentPrefix = "comment1=cooking%20MCs;userdata="
	commentSuffix = ";comment2=%20like%20a%20pound%20of%20bacon"
)

// CommentStore embeds user data in a fixed cookie, strips the ';' and '=' metacharacters from it, and encrypts the
// result with either CBC (padded, fixed random IV) or CTR (fixed random nonce).
type CommentStore struct {
	mode  modes.Mode
	b     cipher.Block
	iv    []byte
	nonce uint64
}

// NewCommentStore returns a CommentStore using the given mode, with all secrets read from rand. It panics if mode is
// not CBC or CTR.
func NewCommentStore(rand io.Reader, mode modes.Mode) *CommentStore {
	if mode != modes.CBC && mode != modes.CTR {
		panic(fmt.Sprintf("aesbreak/oracle: unsupported comment store mode %v", mode))
	}
	return &CommentStore{
		mode:  mode,
		b:     newKey(rand),
		iv:    random(rand, aes.BlockSize),
		nonce: binary.LittleEndian.Uint64(random(rand, 8)),
	}
}

// Cookie returns the plaintext cookie for the given user data.
func Cookie(userdata []byte) []byte {
	quoted := strings.NewReplacer(";", "", "=", "").Replace(string(userdata))
	return slices.Concat([]byte(commentPrefix), []byte(quoted), []byte(commentSuffix))
}

func (s *CommentStore) Encrypt(userdata []byte) []byte {
	cookie := Cookie(userdata)
	if s.mode == modes.CTR {
		modes.NewCTR(s.b, s.nonce, binary.LittleEndian).XORKeyStream(cookie, cookie)
		return cookie
	}

	ciphertext := pkcs7.Pad(nil, cookie, aes.BlockSize)
	modes.NewCBCEncrypter(s.b, s.iv).CryptBlocks(ciphertext, ciphertext)
	return ciphertext
}

// IsAdmin decrypts ciphertext and reports whether one of its ';'-separated elements is "admin=true". Ciphertexts which
// fail to decrypt are never admin.
func (s *CommentStore) IsAdmin(ciphertext []byte) bool {
	plaintext, err := s.decrypt(ciphertext)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(bytes.Split(plaintext, []byte(";")), func(field []byte) bool {
		return string(field) == "admin=true"
	})
}

func (s *CommentStore) decrypt(ciphertext []byte) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))
	if s.mode == modes.CTR {
		modes.NewCTR(s.b, s.nonce, binary.LittleEndian).XORKeyStream(plaintext, ciphertext)
		return plaintext, nil
	}

	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, modes.ErrInvalidLength
	}
	modes.NewCBCDecrypter(s.b, s.iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7.Unpad(plaintext)
}

var _ Encrypter = (*CommentStore)(nil)
