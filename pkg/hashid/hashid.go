// Package hashid turns numeric storage identifiers into opaque URL-safe
// tokens and back. The transform is deterministic: the same id always
// yields the same token under a given secret.
package hashid

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrInvalid is returned for every token that cannot be decoded.
var ErrInvalid = errors.New("Invalid id provided")

type Codec struct {
	block cipher.Block
}

func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("hashid: empty secret")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "hashid: init cipher")
	}
	return &Codec{block: block}, nil
}

func MustNew(secret string) *Codec {
	c, err := New(secret)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode encrypts id with AES-256-CBC under a zero IV and returns it as
// unpadded base64url.
func (c *Codec) Encode(id string) string {
	plain := pkcs7Pad([]byte(id), aes.BlockSize)
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(c.block, zeroIV()).CryptBlocks(out, plain)

	s := base64.StdEncoding.EncodeToString(out)
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	return strings.TrimRight(s, "=")
}

func (c *Codec) Decode(token string) (string, error) {
	if token == "" {
		return "", ErrInvalid
	}

	s := strings.NewReplacer("-", "+", "_", "/").Replace(token)
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", ErrInvalid
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, zeroIV()).CryptBlocks(out, raw)

	plain, ok := pkcs7Unpad(out, aes.BlockSize)
	if !ok || !utf8.Valid(plain) {
		return "", ErrInvalid
	}
	return string(plain), nil
}

func (c *Codec) DecodeSafe(token string) (string, bool) {
	id, err := c.Decode(token)
	if err != nil {
		return "", false
	}
	return id, true
}

func (c *Codec) EncodeUint(id uint) string {
	return c.Encode(strconv.FormatUint(uint64(id), 10))
}

func (c *Codec) DecodeUint(token string) (uint, error) {
	s, err := c.Decode(token)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, ErrInvalid
	}
	return uint(n), nil
}

// DecodeUints decodes every token or fails on the first invalid one.
func (c *Codec) DecodeUints(tokens []string) ([]uint, error) {
	ids := make([]uint, 0, len(tokens))
	for _, t := range tokens {
		id, err := c.DecodeUint(t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DecodeUintsLenient drops invalid tokens instead of failing.
func (c *Codec) DecodeUintsLenient(tokens []string) []uint {
	ids := make([]uint, 0, len(tokens))
	for _, t := range tokens {
		if id, err := c.DecodeUint(t); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func zeroIV() []byte {
	return make([]byte, aes.BlockSize)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
