package tickets

import (
	"crypto/rand"
	"fmt"
)

const (
	numberPrefix  = "TKT-"
	numberLength  = 8
	numberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTicketNumber returns a ticket number of the form TKT-XXXXXXXX with 8
// random uppercase alphanumeric characters. The space is not large enough
// to rule out collisions at scale, so the tickets table enforces
// uniqueness and callers regenerate on ErrNumberTaken.
func NewTicketNumber() (string, error) {
	buf := make([]byte, numberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	for i := range buf {
		buf[i] = numberCharset[int(buf[i])%len(numberCharset)]
	}

	return numberPrefix + string(buf), nil
}
