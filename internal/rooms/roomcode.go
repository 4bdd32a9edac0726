package rooms

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// CodeGenerator produces candidate room codes. Uniqueness is checked by the service.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodes draws uppercase alphanumeric codes from crypto/rand.
type RandomCodes struct{}

func (RandomCodes) Generate() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
