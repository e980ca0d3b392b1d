package domain

import (
	"errors"
	"strings"
	"time"
)

// CNPJLength is the number of digits in a normalized CNPJ.
const CNPJLength = 14

var (
	ErrInvalidCNPJ         = errors.New("cnpj must have exactly 14 digits")
	ErrCNPJCacheMiss       = errors.New("cnpj not cached")
	ErrRegistryUnavailable = errors.New("cnpj registry unavailable")
)

// CNPJRecord is a registry answer stored in the cache table. Payload is the
// registry JSON document, kept verbatim.
type CNPJRecord struct {
	CNPJ      string
	Payload   []byte
	FetchedAt time.Time
}

// NormalizeCNPJ strips every non-digit and requires exactly 14 digits.
func NormalizeCNPJ(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != CNPJLength {
		return "", ErrInvalidCNPJ
	}
	return b.String(), nil
}
