package sealer

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrOpenFailed = errors.New("sealed value can't be opened")

// SecretBox seals short values with NaCl secretbox. The nonce is prepended to
// the ciphertext.
type SecretBox struct {
	key [32]byte
}

func (s *SecretBox) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *SecretBox) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrOpenFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plain, nil
}

// New derives the box key from an application secret of any length.
func New(secret string) (*SecretBox, error) {
	if secret == "" {
		return nil, errors.New("sealer secret is empty")
	}
	return &SecretBox{key: sha256.Sum256([]byte(secret))}, nil
}
