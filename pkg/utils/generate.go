package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== IDEMPOTENCY KEY ====================

// DeriveIdempotencyKey hashes the identifying fields of a booking request
// plus a client nonce. A transport retry of the same logical request lands
// on the same key, so it reuses the existing pending payment instead of
// opening a second gateway authorization.
func DeriveIdempotencyKey(clientID, sitterID uuid.UUID, serviceType string, startTime time.Time, nonce string) string {
	parts := strings.Join([]string{
		clientID.String(),
		sitterID.String(),
		serviceType,
		startTime.UTC().Format(time.RFC3339),
		nonce,
	}, "|")

	sum := sha256.Sum256([]byte(parts))
	return hex.EncodeToString(sum[:])
}

// ==================== ORDER ID ====================

// GenerateOrderID creates a human-readable booking reference
func GenerateOrderID() string {
	now := time.Now()

	// Format: SIT-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("SIT-%s-%s-%s", datePart, timePart, randomPart)
}
