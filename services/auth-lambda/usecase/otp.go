package usecase

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OTPValidity is how long a reset code stays usable. A code aged exactly
// OTPValidity is already expired.
const OTPValidity = 10 * time.Minute

const otpLength = 6

// CodeSource produces one-time reset codes. Injected so tests can pin the
// generated code.
type CodeSource interface {
	Code() (string, error)
}

// NewCodeSource returns the default crypto/rand-backed source.
func NewCodeSource() CodeSource {
	return cryptoCodeSource{}
}

type cryptoCodeSource struct{}

// Code draws a uniformly random 6-digit decimal code, leading zeros kept.
func (cryptoCodeSource) Code() (string, error) {
	const charset = "0123456789"
	otp := make([]byte, otpLength)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		otp[i] = charset[n.Int64()]
	}
	return string(otp), nil
}
