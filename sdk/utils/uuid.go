package utils

import (
	"strings"

	"github.com/google/uuid"
)

func UUIDv4NoDash() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IsUUID reports whether s parses as a UUID. Dataset internal IDs are
// UUIDs, so malformed ones can be rejected without a round trip.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
