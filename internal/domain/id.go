package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewTransactionID builds the human-traceable transaction identifier:
// TXN-{bookingId}-{unix millis}-{8 hex chars}.
func NewTransactionID(bookingID string, now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("TXN-%s-%d-%s", bookingID, now.UnixMilli(), hex.EncodeToString(buf))
}
