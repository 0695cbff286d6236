// Package mongo is the document store driver. Organizations are single
// documents holding their members, access groups and API keys as maps, so
// member and group edits are dotted field-path updates.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

const (
	colUsers             = "users"
	colOrganizations     = "organizations"
	colLocations         = "locations"
	colAccessPoints      = "accessPoints"
	colInvitations       = "invitations"
	colNotifications     = "notifications"
	colVerificationCodes = "verificationCodes"
)

// connectTimeout bounds the initial connect and ping.
const connectTimeout = 10 * time.Second

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and uses database name. Transactions require the
// server to run as a replica set.
func NewStore(uri, name string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(name)}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Tx starts a session transaction. Every repository obtained from the
// returned Tx runs its operations inside that session.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		return nil, err
	}
	return &txStore{ctx: ctx, db: s.db, sess: sess}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) base() repo { return repo{db: s.db} }

func (s *Store) Users() store.Users                 { return &usersRepo{s.base()} }
func (s *Store) Organizations() store.Organizations { return &organizationsRepo{s.base()} }
func (s *Store) Locations() store.Locations         { return &locationsRepo{s.base()} }
func (s *Store) AccessPoints() store.AccessPoints   { return &accessPointsRepo{s.base()} }
func (s *Store) Invitations() store.Invitations     { return &invitationsRepo{s.base()} }
func (s *Store) Notifications() store.Notifications { return &notificationsRepo{s.base()} }
func (s *Store) VerificationCodes() store.VerificationCodes {
	return &verificationCodesRepo{s.base()}
}

// repo is embedded by every repository. sess is set when the repository was
// obtained from a transaction.
type repo struct {
	db   *mongo.Database
	sess mongo.Session
}

func (r repo) ctx(ctx context.Context) context.Context {
	if r.sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, r.sess)
}

func (r repo) coll(name string) *mongo.Collection {
	return r.db.Collection(name)
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func mapDuplicate(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// requireMatched returns ErrNotFound when an update matched nothing.
func requireMatched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return mapDuplicate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func requireDeleted(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// fieldKey guards map keys used in dotted paths.
func fieldKey(k string) (string, error) {
	if k == "" || strings.ContainsAny(k, ".$") {
		return "", fmt.Errorf("mongo: invalid map key %q", k)
	}
	return k, nil
}

// nonNil keeps arrays as arrays so $pull never meets a null field.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// decodeAll drains cur through conv.
func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, conv func(D) T) ([]T, error) {
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		var d D
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, conv(d))
	}
	return out, cur.Err()
}
