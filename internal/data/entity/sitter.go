package entity

import (
	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceTypeHouseSitting ServiceType = "house_sitting"
	ServiceTypeDogWalking   ServiceType = "dog_walking"
	ServiceTypeDropInVisit  ServiceType = "drop_in_visit"
	ServiceTypeOvernight    ServiceType = "overnight"
)

type Sitter struct {
	Base
	Name   string `db:"name"`
	City   string `db:"city"`
	Bio    string `db:"bio"`
	Active bool   `db:"active"`
}

// SitterService is the rate card entry for one service a sitter offers.
// Unique on (sitter_id, service_type).
type SitterService struct {
	BaseSimple
	SitterID        uuid.UUID   `db:"sitter_id"`
	ServiceType     ServiceType `db:"service_type"`
	HourlyRateCents int64       `db:"hourly_rate_cents"`
	Active          bool        `db:"active"`
}
