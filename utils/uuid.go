package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier. Ledger entries are keyed by
// these IDs and bidder histories reference them.
func GenerateID() string {
	return uuid.New().String()
}
