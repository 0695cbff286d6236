package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/internal/xcs/store/drivers/sqlite"
)

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewStoreFromDB(db), mock
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM access_points WHERE organization_id").
		WithArgs("org1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM organizations WHERE id").
		WithArgs("org1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().DeleteAccessPointsByOrganization(ctx, "org1"); err != nil {
			return err
		}
		return tx.Organizations().DeleteOrganization(ctx, "org1")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackWhenAStepFails(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)
	boom := errors.New("disk on fire")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM access_points WHERE organization_id").
		WithArgs("org1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM organizations WHERE id").
		WithArgs("org1").
		WillReturnError(boom)
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().DeleteAccessPointsByOrganization(ctx, "org1"); err != nil {
			return err
		}
		return tx.Organizations().DeleteOrganization(ctx, "org1")
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM notifications WHERE id").
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, s.Notifications().DeleteNotification(ctx, "n1"), store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementInvitesGuard(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE users SET invites = invites - 1").
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, s.Users().DecrementInvites(ctx, "u1"), store.ErrConditionFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNestedTxIsRejected(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
