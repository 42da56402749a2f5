package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateVerificationToken returns a 40-char hex token. The first 5
// characters double as the emailed confirmation code.
func GenerateVerificationToken() string {
	buf := make([]byte, 20)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

const passwordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword returns a random 10-char password for the
// forgot-password and activation flows.
func GeneratePassword() string {
	out := make([]byte, 10)
	for i := range out {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		out[i] = passwordChars[n.Int64()]
	}
	return string(out)
}

// GenerateKeytagUPCA returns a 12-digit UPC-A keytag number: 11 random
// digits plus the standard check digit.
func GenerateKeytagUPCA() string {
	digits := make([]byte, 12)
	sum := 0
	for i := 0; i < 11; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(10))
		d := int(n.Int64())
		digits[i] = byte('0' + d)
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	check := (10 - sum%10) % 10
	digits[11] = byte('0' + check)
	return string(digits)
}
