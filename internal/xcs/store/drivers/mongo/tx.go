package mongo

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

var errNestedTx = errors.New("mongo: nested transactions are not supported")

type txStore struct {
	ctx  context.Context
	db   *mongo.Database
	sess mongo.Session

	once sync.Once
}

func (t *txStore) finish(fn func(ctx context.Context) error) error {
	err := errors.New("mongo: transaction already finished")
	t.once.Do(func() {
		err = fn(t.ctx)
		t.sess.EndSession(t.ctx)
	})
	return err
}

func (t *txStore) Commit() error   { return t.finish(t.sess.CommitTransaction) }
func (t *txStore) Rollback() error { return t.finish(t.sess.AbortTransaction) }

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) base() repo { return repo{db: t.db, sess: t.sess} }

func (t *txStore) Users() store.Users                 { return &usersRepo{t.base()} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{t.base()} }
func (t *txStore) Locations() store.Locations         { return &locationsRepo{t.base()} }
func (t *txStore) AccessPoints() store.AccessPoints   { return &accessPointsRepo{t.base()} }
func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{t.base()} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{t.base()} }
func (t *txStore) VerificationCodes() store.VerificationCodes {
	return &verificationCodesRepo{t.base()}
}
