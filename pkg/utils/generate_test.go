package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveIdempotencyKey_StableAcrossRetries(t *testing.T) {
	clientID := uuid.New()
	sitterID := uuid.New()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	key1 := DeriveIdempotencyKey(clientID, sitterID, "dog_walking", start, "")
	key2 := DeriveIdempotencyKey(clientID, sitterID, "dog_walking", start, "")

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 64)
}

func TestDeriveIdempotencyKey_TimezoneNormalized(t *testing.T) {
	clientID := uuid.New()
	sitterID := uuid.New()
	utcStart := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	offsetStart := utcStart.In(time.FixedZone("CEST", 2*3600))

	assert.Equal(t,
		DeriveIdempotencyKey(clientID, sitterID, "dog_walking", utcStart, ""),
		DeriveIdempotencyKey(clientID, sitterID, "dog_walking", offsetStart, ""),
	)
}

func TestDeriveIdempotencyKey_DistinguishesRequests(t *testing.T) {
	clientID := uuid.New()
	sitterID := uuid.New()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	base := DeriveIdempotencyKey(clientID, sitterID, "dog_walking", start, "")

	assert.NotEqual(t, base, DeriveIdempotencyKey(clientID, sitterID, "dog_walking", start, "retry-2"))
	assert.NotEqual(t, base, DeriveIdempotencyKey(clientID, sitterID, "overnight", start, ""))
	assert.NotEqual(t, base, DeriveIdempotencyKey(clientID, sitterID, "dog_walking", start.Add(time.Hour), ""))
	assert.NotEqual(t, base, DeriveIdempotencyKey(uuid.New(), sitterID, "dog_walking", start, ""))
}

func TestGenerateOrderID(t *testing.T) {
	orderID := GenerateOrderID()

	assert.True(t, strings.HasPrefix(orderID, "SIT-"))
	assert.Len(t, strings.Split(orderID, "-"), 4)
}
