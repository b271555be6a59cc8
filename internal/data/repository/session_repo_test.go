package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionRepoWithMock(t *testing.T) (SessionRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewSessionRepository(mock, zap.NewNop()), mock
}

func TestSessionFindValidSession(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("tok_abc").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "token", "role", "expires_at", "revoked_at", "created_at",
		}).AddRow(id, userID, "tok_abc", "client", time.Now().Add(time.Hour), nil, time.Now()))

	session, err := repo.FindValidSession(context.Background(), "tok_abc")

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "client", session.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFindValidSession_NotFound(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("tok_expired").
		WillReturnError(pgx.ErrNoRows)

	session, err := repo.FindValidSession(context.Background(), "tok_expired")

	require.NoError(t, err)
	assert.Nil(t, session)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRevoke(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectExec("UPDATE sessions").
		WithArgs("tok_abc").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Revoke(context.Background(), "tok_abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRevoke_AlreadyRevoked(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectExec("UPDATE sessions").
		WithArgs("tok_abc").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), "tok_abc")

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRevokeAllUserSessions(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	userID := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	require.NoError(t, repo.RevokeAllUserSessions(context.Background(), userID))
	require.NoError(t, mock.ExpectationsWereMet())
}
