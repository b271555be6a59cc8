package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingWithDeps(repo *repository.Repository, gw gateway.Gateway) BookingService {
	return NewBookingService(repo, gw, testConfig(), testLogger())
}

func pendingForIntent(t *testing.T, intentID string, amountCents int64, status entity.PendingPaymentStatus) *entity.PendingPayment {
	t.Helper()

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	snapshot, err := json.Marshal(entity.BookingRequestSnapshot{
		ClientID:    uuid.New(),
		SitterID:    uuid.New(),
		ServiceType: entity.ServiceTypeDogWalking,
		StartTime:   start,
		EndTime:     start.Add(3 * time.Hour),
		Location:    "123 Oak St",
	})
	require.NoError(t, err)

	return &entity.PendingPayment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		IdempotencyKey:  "key-" + intentID,
		GatewayIntentID: intentID,
		ClientSecret:    intentID + "_secret_abc",
		AmountCents:     amountCents,
		Currency:        "usd",
		Status:          status,
		RequestSnapshot: snapshot,
	}
}

func succeededIntent(intentID string, amountCents int64) *gateway.Intent {
	return &gateway.Intent{
		ID:             intentID,
		Status:         gateway.StatusSucceeded,
		AmountCents:    amountCents,
		Currency:       "usd",
		LatestChargeID: "ch_123",
	}
}

func TestBookingCommit_HappyPath(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	pendingRepo := &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, id string) (*entity.PendingPayment, error) {
			require.Equal(t, "pi_123", id)
			return pending, nil
		},
	}
	bookingRepo := &fakeBookingRepo{}
	repo := newTestRepo()
	repo.PendingPayment = pendingRepo
	repo.Booking = bookingRepo

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 5700), nil
		},
	}

	resp, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.NoError(t, err)
	assert.Equal(t, int64(5700), resp.TotalPriceCents)
	assert.Equal(t, 1500, resp.CommissionRateBp)
	assert.Equal(t, int64(855), resp.PlatformFeeCents)
	assert.Equal(t, int64(4845), resp.SitterPayoutCents)
	assert.Equal(t, "pi_123", resp.PaymentReference)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.NotEmpty(t, resp.OrderID)

	// success was recorded before the commit write
	require.Len(t, pendingRepo.authorizedIDs, 1)
	assert.Equal(t, pending.ID, pendingRepo.authorizedIDs[0])
	require.Len(t, bookingRepo.createdBookings, 1)
}

func TestBookingCommit_WebhookPathWithoutChargeID(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 5700), nil
		},
	}

	resp, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "")

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestBookingCommit_RetryReturnsExistingBooking(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusConsumed)
	existing := &entity.Booking{
		Base:             entity.Base{ID: uuid.New()},
		OrderID:          "SIT-20260830-120000-0001",
		ClientID:         uuid.New(),
		SitterID:         uuid.New(),
		TotalPriceCents:  5700,
		PaymentReference: "pi_123",
		Status:           entity.BookingStatusConfirmed,
	}

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}
	repo.Booking = &fakeBookingRepo{
		findByRef: func(_ context.Context, ref string) (*entity.Booking, error) {
			require.Equal(t, "pi_123", ref)
			return existing, nil
		},
	}

	// a retry of a finished commit never talks to the gateway
	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, _ string) (*gateway.Intent, error) {
			t.Fatal("gateway should not be consulted for a consumed payment")
			return nil, nil
		},
	}

	resp, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.NoError(t, err)
	assert.Equal(t, existing.OrderID, resp.OrderID)
	assert.Equal(t, existing.ID.String(), resp.ID)
}

func TestBookingCommit_UnknownIntent(t *testing.T) {
	repo := newTestRepo()
	gw := &fakeGateway{}

	_, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_unknown", "ch_123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestBookingCommit_ChargeNotSucceeded(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}
	bookingRepo := repo.Booking.(*fakeBookingRepo)

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return &gateway.Intent{ID: id, Status: gateway.StatusRequiresAction, AmountCents: 5700}, nil
		},
	}

	_, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentNotVerified)
	assert.Empty(t, bookingRepo.createdBookings)
}

func TestBookingCommit_ChargeIDMismatch(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 5700), nil
		},
	}

	_, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_forged")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentNotVerified)
}

func TestBookingCommit_AmountMismatch(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	pendingRepo := &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}
	repo := newTestRepo()
	repo.PendingPayment = pendingRepo

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 100), nil
		},
	}

	_, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmountMismatch)
	// left untouched for the reconciliation sweep
	assert.Empty(t, pendingRepo.authorizedIDs)
	assert.Empty(t, pendingRepo.abandonedIDs)
}

func TestBookingCommit_GatewayUnavailable(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, _ string) (*gateway.Intent, error) {
			return nil, gateway.ErrUnavailable
		},
	}

	_, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestBookingCommit_ConcurrentDuplicateReturnsWinner(t *testing.T) {
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusAuthorized)
	winner := &entity.Booking{
		Base:             entity.Base{ID: uuid.New()},
		OrderID:          "SIT-20260830-120000-0002",
		ClientID:         uuid.New(),
		SitterID:         uuid.New(),
		TotalPriceCents:  5700,
		PaymentReference: "pi_123",
		Status:           entity.BookingStatusConfirmed,
	}

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
	}
	repo.Booking = &fakeBookingRepo{
		createConfirmed: func(_ context.Context, _ *entity.Booking, _ uuid.UUID) error {
			return repository.ErrDuplicateBooking
		},
		findByRef: func(_ context.Context, _ string) (*entity.Booking, error) {
			return winner, nil
		},
	}

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 5700), nil
		},
	}

	resp, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.NoError(t, err)
	assert.Equal(t, winner.OrderID, resp.OrderID)
}

func TestBookingCommit_RaceOnAuthorizeReturnsWinner(t *testing.T) {
	// Both callers read the record in 'created'; the loser's guarded
	// created->authorized update matches no row because the winner already
	// consumed the record. The loser must converge on the winner's booking.
	pending := pendingForIntent(t, "pi_123", 5700, entity.PendingPaymentStatusCreated)
	winner := &entity.Booking{
		Base:             entity.Base{ID: uuid.New()},
		OrderID:          "SIT-20260830-120000-0003",
		ClientID:         uuid.New(),
		SitterID:         uuid.New(),
		TotalPriceCents:  5700,
		PaymentReference: "pi_123",
		Status:           entity.BookingStatusConfirmed,
	}

	repo := newTestRepo()
	repo.PendingPayment = &fakePendingPaymentRepo{
		findByIntent: func(_ context.Context, _ string) (*entity.PendingPayment, error) {
			return pending, nil
		},
		markAuthorized: func(_ context.Context, id uuid.UUID) error {
			return fmt.Errorf("mark pending payment %s authorized: %w", id.String(), repository.ErrStateConflict)
		},
	}
	bookingRepo := &fakeBookingRepo{
		findByRef: func(_ context.Context, _ string) (*entity.Booking, error) {
			return winner, nil
		},
	}
	repo.Booking = bookingRepo

	gw := &fakeGateway{
		retrieveFn: func(_ context.Context, id string) (*gateway.Intent, error) {
			return succeededIntent(id, 5700), nil
		},
	}

	resp, err := bookingWithDeps(repo, gw).Commit(context.Background(), "pi_123", "ch_123")

	require.NoError(t, err)
	assert.Equal(t, winner.OrderID, resp.OrderID)
	assert.Empty(t, bookingRepo.createdBookings)
}

func TestBookingCancel_OnlyConfirmed(t *testing.T) {
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		Status: entity.BookingStatusCancelled,
	}

	repo := newTestRepo()
	repo.Booking = &fakeBookingRepo{
		findByID: func(_ context.Context, _ uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}

	err := bookingWithDeps(repo, &fakeGateway{}).CancelBooking(context.Background(), booking.ID.String())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestBookingCancel_Confirmed(t *testing.T) {
	booking := &entity.Booking{
		Base:    entity.Base{ID: uuid.New()},
		OrderID: "SIT-20260830-120000-0003",
		Status:  entity.BookingStatusConfirmed,
	}

	var updatedTo entity.BookingStatus
	repo := newTestRepo()
	repo.Booking = &fakeBookingRepo{
		findByID: func(_ context.Context, _ uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		updateStatus: func(_ context.Context, _ uuid.UUID, status entity.BookingStatus) error {
			updatedTo = status
			return nil
		},
	}

	err := bookingWithDeps(repo, &fakeGateway{}).CancelBooking(context.Background(), booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, updatedTo)
}
