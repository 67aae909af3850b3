// Package repository persists wizard sessions in Redis. Sessions are
// ephemeral by design: every write refreshes the TTL, and an abandoned
// wizard simply expires.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"intake_gateway/internal/wizard/domain"
	"intake_gateway/platform/apperr"
)

const (
	keyPrefix  = "wizard:session:"
	lockPrefix = "wizard:advance:"

	// advanceLockTTL is a backstop for a crashed holder; the controller
	// releases the lock explicitly on every path.
	advanceLockTTL = 30 * time.Second
)

// Repository is the Redis-backed session store.
type Repository struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a session repository with the given session lifetime.
func New(rdb *redis.Client, ttl time.Duration) *Repository {
	return &Repository{rdb: rdb, ttl: ttl}
}

// Get loads a session by id. A missing or expired session is NotFound.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, apperr.NotFound("wizard session").WithOp("wizard.repository.Get")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load wizard session", err).WithOp("wizard.repository.Get")
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode wizard session", err).WithOp("wizard.repository.Get")
	}
	return &sess, nil
}

// Save stores the session and refreshes its TTL.
func (r *Repository) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode wizard session", err).WithOp("wizard.repository.Save")
	}
	if err := r.rdb.Set(ctx, keyPrefix+sess.ID, payload, r.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store wizard session", err).WithOp("wizard.repository.Save")
	}
	return nil
}

// AcquireAdvance takes the per-session navigation lock. It reports false
// when another navigation already holds it. SETNX makes the take atomic, so
// two concurrent callers can never both acquire.
func (r *Repository) AcquireAdvance(ctx context.Context, id string) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, lockPrefix+id, "1", advanceLockTTL).Result()
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "acquire advance lock", err).WithOp("wizard.repository.AcquireAdvance")
	}
	return ok, nil
}

// ReleaseAdvance drops the navigation lock. Releasing a free lock is not an
// error.
func (r *Repository) ReleaseAdvance(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, lockPrefix+id).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "release advance lock", err).WithOp("wizard.repository.ReleaseAdvance")
	}
	return nil
}

// Delete removes a session together with its navigation lock. Deleting a
// missing session is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, keyPrefix+id, lockPrefix+id).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete wizard session", err).WithOp("wizard.repository.Delete")
	}
	return nil
}
