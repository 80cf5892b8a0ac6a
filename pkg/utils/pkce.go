package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// ==================== PKCE ====================

// PkcePair 一次授权尝试所需的 PKCE 三元组
type PkcePair struct {
	Verifier  string `json:"verifier"`
	Challenge string `json:"challenge"`
	Nonce     string `json:"nonce"` // 作为 state 使用，防重放
}

// GenerateRandomString 生成指定长度的随机字符串 (用于 verifier 和 nonce)
// 字符集为 URL 安全的 66 个字符，随机源必须是 crypto/rand
func GenerateRandomString(length int) (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	var result strings.Builder
	for _, bVal := range b {
		result.WriteByte(charset[int(bVal)%len(charset)])
	}
	return result.String(), nil
}

// GenerateCodeChallenge 基于 verifier 生成 S256 Challenge 字符串
// 算法：Base64UrlEncode(SHA256(UTF8(verifier)))，不带填充符=
func GenerateCodeChallenge(verifier string) string {
	h := sha256.New()
	h.Write([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// CreatePkcePair 生成一次性的 verifier(128) / challenge / nonce(32)
// verifier 与 nonce 每次调用必须互相独立；challenge 对同一 verifier 恒定
func CreatePkcePair() (*PkcePair, error) {
	verifier, err := GenerateRandomString(128)
	if err != nil {
		return nil, err
	}
	nonce, err := GenerateRandomString(32)
	if err != nil {
		return nil, err
	}
	return &PkcePair{
		Verifier:  verifier,
		Challenge: GenerateCodeChallenge(verifier),
		Nonce:     nonce,
	}, nil
}
