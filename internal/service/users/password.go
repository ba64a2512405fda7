package users

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SaltLength длина соли в байтах
const SaltLength = 16

// HMACHasher хеширует пароль как HMAC-SHA256 с ключом-солью (hex)
// Формат совместим с уже сохраненными учетными записями
type HMACHasher struct{}

// NewHMACHasher создает хешер паролей
func NewHMACHasher() *HMACHasher {
	return &HMACHasher{}
}

// Hash генерирует соль и возвращает hex(HMAC-SHA256(salt, password)) и соль
func (h *HMACHasher) Hash(password string) (string, string, error) {
	buf := make([]byte, SaltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(buf)
	return sign(password, salt), salt, nil
}

// Verify сравнивает пароль с сохраненным хешем за постоянное время
func (h *HMACHasher) Verify(password, hash, salt string) bool {
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	actual, _ := hex.DecodeString(sign(password, salt))
	return hmac.Equal(actual, expected)
}

func sign(password, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
