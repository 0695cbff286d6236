package sqlite

import (
	"context"
	"database/sql"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer Store owns the connection

// Ping is a no-op for transactions; the connection is already established.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{db: t.tx} }
func (t *txStore) Locations() store.Locations         { return &locationsRepo{db: t.tx} }
func (t *txStore) AccessPoints() store.AccessPoints   { return &accessPointsRepo{db: t.tx} }
func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{db: t.tx} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{db: t.tx} }
func (t *txStore) VerificationCodes() store.VerificationCodes {
	return &verificationCodesRepo{db: t.tx}
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
