package usecase

import (
	"context"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/gateway"
	"sitter-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hand-rolled fakes with function fields. Unset read methods return
// (nil, nil), unset writes succeed, so each test only wires what it
// asserts on.

type fakeGateway struct {
	createFn    func(ctx context.Context, amountCents int64, currency, key string, metadata map[string]string) (*gateway.Intent, error)
	retrieveFn  func(ctx context.Context, intentID string) (*gateway.Intent, error)
	createCalls int
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amountCents int64, currency, key string, metadata map[string]string) (*gateway.Intent, error) {
	g.createCalls++
	if g.createFn == nil {
		return nil, nil
	}
	return g.createFn(ctx, amountCents, currency, key, metadata)
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, intentID string) (*gateway.Intent, error) {
	if g.retrieveFn == nil {
		return nil, nil
	}
	return g.retrieveFn(ctx, intentID)
}

type fakeSitterRepo struct {
	findByID         func(ctx context.Context, id uuid.UUID) (*entity.Sitter, error)
	findActiveByCity func(ctx context.Context, city string, limit, offset int) ([]*entity.Sitter, error)
}

func (r *fakeSitterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sitter, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

func (r *fakeSitterRepo) FindActiveByCity(ctx context.Context, city string, limit, offset int) ([]*entity.Sitter, error) {
	if r.findActiveByCity == nil {
		return nil, nil
	}
	return r.findActiveByCity(ctx, city, limit, offset)
}

type fakeSitterServiceRepo struct {
	findByType     func(ctx context.Context, sitterID uuid.UUID, serviceType entity.ServiceType) (*entity.SitterService, error)
	activeBySitter func(ctx context.Context, sitterID uuid.UUID) ([]*entity.SitterService, error)
}

func (r *fakeSitterServiceRepo) FindBySitterAndType(ctx context.Context, sitterID uuid.UUID, serviceType entity.ServiceType) (*entity.SitterService, error) {
	if r.findByType == nil {
		return nil, nil
	}
	return r.findByType(ctx, sitterID, serviceType)
}

func (r *fakeSitterServiceRepo) FindActiveBySitter(ctx context.Context, sitterID uuid.UUID) ([]*entity.SitterService, error) {
	if r.activeBySitter == nil {
		return nil, nil
	}
	return r.activeBySitter(ctx, sitterID)
}

type fakeAddOnRepo struct {
	findByCode    func(ctx context.Context, code string) (*entity.AddOn, error)
	findAllActive func(ctx context.Context) ([]*entity.AddOn, error)
}

func (r *fakeAddOnRepo) FindByCode(ctx context.Context, code string) (*entity.AddOn, error) {
	if r.findByCode == nil {
		return nil, nil
	}
	return r.findByCode(ctx, code)
}

func (r *fakeAddOnRepo) FindAllActive(ctx context.Context) ([]*entity.AddOn, error) {
	if r.findAllActive == nil {
		return nil, nil
	}
	return r.findAllActive(ctx)
}

type fakePendingPaymentRepo struct {
	create         func(ctx context.Context, payment *entity.PendingPayment) error
	findByKey      func(ctx context.Context, key string) (*entity.PendingPayment, error)
	findByIntent   func(ctx context.Context, gatewayIntentID string) (*entity.PendingPayment, error)
	markAuthorized func(ctx context.Context, id uuid.UUID) error
	markAbandoned  func(ctx context.Context, id uuid.UUID) error
	findStale      func(ctx context.Context, status entity.PendingPaymentStatus, olderThan time.Duration) ([]*entity.PendingPayment, error)
	abandonedIDs   []uuid.UUID
	authorizedIDs  []uuid.UUID
}

func (r *fakePendingPaymentRepo) Create(ctx context.Context, payment *entity.PendingPayment) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, payment)
}

func (r *fakePendingPaymentRepo) FindByIdempotencyKey(ctx context.Context, key string) (*entity.PendingPayment, error) {
	if r.findByKey == nil {
		return nil, nil
	}
	return r.findByKey(ctx, key)
}

func (r *fakePendingPaymentRepo) FindByIntentID(ctx context.Context, gatewayIntentID string) (*entity.PendingPayment, error) {
	if r.findByIntent == nil {
		return nil, nil
	}
	return r.findByIntent(ctx, gatewayIntentID)
}

func (r *fakePendingPaymentRepo) MarkAuthorized(ctx context.Context, id uuid.UUID) error {
	r.authorizedIDs = append(r.authorizedIDs, id)
	if r.markAuthorized == nil {
		return nil
	}
	return r.markAuthorized(ctx, id)
}

func (r *fakePendingPaymentRepo) MarkAbandoned(ctx context.Context, id uuid.UUID) error {
	r.abandonedIDs = append(r.abandonedIDs, id)
	if r.markAbandoned == nil {
		return nil
	}
	return r.markAbandoned(ctx, id)
}

func (r *fakePendingPaymentRepo) FindStaleByStatus(ctx context.Context, status entity.PendingPaymentStatus, olderThan time.Duration) ([]*entity.PendingPayment, error) {
	if r.findStale == nil {
		return nil, nil
	}
	return r.findStale(ctx, status, olderThan)
}

type fakeBookingRepo struct {
	createConfirmed func(ctx context.Context, booking *entity.Booking, pendingPaymentID uuid.UUID) error
	findByID        func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByRef       func(ctx context.Context, paymentReference string) (*entity.Booking, error)
	findByClient    func(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	countByClient   func(ctx context.Context, clientID uuid.UUID) (int64, error)
	existsOverlap   func(ctx context.Context, sitterID uuid.UUID, start, end time.Time) (bool, error)
	updateStatus    func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	createdBookings []*entity.Booking
}

func (r *fakeBookingRepo) CreateConfirmed(ctx context.Context, booking *entity.Booking, pendingPaymentID uuid.UUID) error {
	if r.createConfirmed != nil {
		if err := r.createConfirmed(ctx, booking, pendingPaymentID); err != nil {
			return err
		}
	}
	r.createdBookings = append(r.createdBookings, booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if r.findByID == nil {
		return nil, nil
	}
	return r.findByID(ctx, id)
}

func (r *fakeBookingRepo) FindByPaymentReference(ctx context.Context, paymentReference string) (*entity.Booking, error) {
	if r.findByRef == nil {
		return nil, nil
	}
	return r.findByRef(ctx, paymentReference)
}

func (r *fakeBookingRepo) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	if r.findByClient == nil {
		return nil, nil
	}
	return r.findByClient(ctx, clientID, limit, offset)
}

func (r *fakeBookingRepo) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	if r.countByClient == nil {
		return 0, nil
	}
	return r.countByClient(ctx, clientID)
}

func (r *fakeBookingRepo) ExistsOverlapping(ctx context.Context, sitterID uuid.UUID, start, end time.Time) (bool, error) {
	if r.existsOverlap == nil {
		return false, nil
	}
	return r.existsOverlap(ctx, sitterID, start, end)
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if r.updateStatus == nil {
		return nil
	}
	return r.updateStatus(ctx, bookingID, status)
}

type fakeSessionRepo struct {
	findValid     func(ctx context.Context, token string) (*entity.Session, error)
	revoke        func(ctx context.Context, token string) error
	revokeAll     func(ctx context.Context, userID uuid.UUID) error
	revokedTokens []string
	revokedUsers  []uuid.UUID
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if r.findValid == nil {
		return nil, nil
	}
	return r.findValid(ctx, token)
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	r.revokedTokens = append(r.revokedTokens, token)
	if r.revoke == nil {
		return nil
	}
	return r.revoke(ctx, token)
}

func (r *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.revokedUsers = append(r.revokedUsers, userID)
	if r.revokeAll == nil {
		return nil
	}
	return r.revokeAll(ctx, userID)
}

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Session:        &fakeSessionRepo{},
		Sitter:         &fakeSitterRepo{},
		SitterService:  &fakeSitterServiceRepo{},
		AddOn:          &fakeAddOnRepo{},
		PendingPayment: &fakePendingPaymentRepo{},
		Booking:        &fakeBookingRepo{},
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Gateway: utils.GatewayConfig{
			SecretKey:        "sk_test_fake",
			Currency:         "usd",
			CommissionRateBp: 1500,
		},
		Sweep: utils.SweepConfig{
			Interval:           time.Minute,
			AuthorizedDeadline: 15 * time.Minute,
			CreatedTimeout:     30 * time.Minute,
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
