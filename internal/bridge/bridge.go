// Package bridge carries a small field snapshot from one wizard step to a
// later one. Writes overwrite, reads consume: the snapshot survives exactly
// one restore and then disappears, with a TTL backstop for sessions that
// never reach the consuming step.
package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"intake_gateway/platform/apperr"
)

const keyPrefix = "bridge:"

// Snapshot is the field payload carried across steps. Keys are field names
// in the destination step.
type Snapshot map[string]string

// Store persists snapshots in Redis under a per-session key.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a bridge store. ttl bounds how long an unconsumed
// snapshot lives.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Put stores the snapshot for the session, replacing any previous one.
// An empty snapshot clears the slot instead of writing an empty payload.
func (s *Store) Put(ctx context.Context, sessionID string, snap Snapshot) error {
	key := keyPrefix + sessionID

	if len(snap) == 0 {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return apperr.Wrap(apperr.KindInternal, "clear bridge snapshot", err).WithOp("bridge.Put")
		}
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode bridge snapshot", err).WithOp("bridge.Put")
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store bridge snapshot", err).WithOp("bridge.Put")
	}
	return nil
}

// Take returns the session's snapshot and deletes it atomically. A missing
// snapshot returns a nil map and no error; the caller treats it as nothing
// to restore.
func (s *Store) Take(ctx context.Context, sessionID string) (Snapshot, error) {
	key := keyPrefix + sessionID

	payload, err := s.rdb.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "read bridge snapshot", err).WithOp("bridge.Take")
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode bridge snapshot", err).WithOp("bridge.Take")
	}
	return snap, nil
}
