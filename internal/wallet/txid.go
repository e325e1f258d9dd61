package wallet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	prefixTransaction = "TXN"
	prefixRefund      = "REFUND"
)

// newTransactionID returns PREFIX-<unix millis>-<uuid v7>. Version 7 UUIDs
// carry a per-process monotonic sequence within the same millisecond plus
// random bits, so ids generated concurrently never repeat.
func newTransactionID(prefix string, now time.Time) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate transaction id: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), id.String()), nil
}
