package utils

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

func NewID() string { return uuid.NewString() }

// ShortToken renders n characters of a fresh UUID in unpadded base32,
// suitable for human-readable references like order numbers.
func ShortToken(n int) string {
	id := uuid.New()
	s := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	s = strings.ToUpper(s)
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
