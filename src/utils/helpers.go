package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"netrix/src/config"
	"netrix/src/types"
)

// EncryptMessage seals plaintext with AES-GCM under the given key and
// returns hex(nonce||ciphertext).
func EncryptMessage(key []byte, message string) (string, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(c)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, []byte(message), nil)
	return hex.EncodeToString(sealed), nil
}

func DecryptMessage(key []byte, encrypted string) (string, error) {
	raw, err := hex.DecodeString(encrypted)
	if err != nil {
		return "", err
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(c)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", errors.New("ciphertext shorter than nonce")
	}
	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// SecretKey returns the API secret as key bytes. The secret is a
// hex-encoded 256-bit key.
func SecretKey() ([]byte, error) {
	key, err := hex.DecodeString(config.API_SECRET)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, errors.New("API_SECRET must be a hex-encoded 32-byte key")
	}
	return key, nil
}

func IsProd() bool {
	return config.API_ENV == string(types.Production)
}
