package tickets_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promobook/internal/domain/tickets"
)

var numberPattern = regexp.MustCompile(`^TKT-[0-9A-Z]{8}$`)

func TestNewTicketNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		number, err := tickets.NewTicketNumber()
		require.NoError(t, err)
		assert.Regexp(t, numberPattern, number)
	}
}

func TestNewTicketNumber_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number, err := tickets.NewTicketNumber()
		require.NoError(t, err)
		seen[number] = true
	}

	// 100 draws from a 36^8 space should never collide
	assert.Len(t, seen, 100)
}
