package entity

// AddOn is a server-side priced extra (e.g. plant watering, medication).
// Prices always come from this table, never from the client.
type AddOn struct {
	BaseSimple
	Code       string `db:"code"`
	Name       string `db:"name"`
	PriceCents int64  `db:"price_cents"`
	Active     bool   `db:"active"`
}
