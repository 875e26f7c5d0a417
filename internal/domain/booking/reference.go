package booking

import (
	"crypto/rand"
	"math/big"
)

const (
	// ReferenceLength は予約番号の桁数
	ReferenceLength   = 8
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ReferenceGenerator は予約番号の生成関数
type ReferenceGenerator func() (string, error)

// GenerateReference は英大文字と数字からなる8桁の予約番号を生成する
func GenerateReference() (string, error) {
	b := make([]byte, ReferenceLength)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = referenceAlphabet[n.Int64()]
	}
	return string(b), nil
}

// IsValidReference は予約番号の形式が正しいかを返す
func IsValidReference(ref string) bool {
	if len(ref) != ReferenceLength {
		return false
	}
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
