package repository

import (
	"sitter-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Session        SessionRepository
	Sitter         SitterRepository
	SitterService  SitterServiceRepository
	AddOn          AddOnRepository
	PendingPayment PendingPaymentRepository
	Booking        BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Session:        NewSessionRepository(db, log),
		Sitter:         NewSitterRepository(db, log),
		SitterService:  NewSitterServiceRepository(db, log),
		AddOn:          NewAddOnRepository(db, log),
		PendingPayment: NewPendingPaymentRepository(db, log),
		Booking:        NewBookingRepository(db, log),
	}
}
