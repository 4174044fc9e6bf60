package credential

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NumberPrefix precedes the random token of every credential number.
const NumberPrefix = "SC-"

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const numberTokenLength = 8

// GenerateNumber mints a credential number: fixed prefix plus a random
// 8-character uppercase token.
func GenerateNumber() (string, error) {
	token, err := gonanoid.Generate(numberAlphabet, numberTokenLength)
	if err != nil {
		return "", err
	}
	return NumberPrefix + token, nil
}
