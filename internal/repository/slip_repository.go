package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SlipStore keeps one record per verified transaction reference in Redis.
// Records never expire: a reference that was accepted once stays used for
// the lifetime of the shop.
type SlipStore struct {
	RDB    *redis.Client
	Prefix string
}

func NewSlipStore(rdb *redis.Client) *SlipStore {
	return &SlipStore{RDB: rdb, Prefix: "slip"}
}

// PutIfAbsent stores the raw verification payload under transRef only when
// no record exists yet, in one round trip.  It returns true when this call
// created the record, false when the reference was already used.  SETNX
// makes check-and-write atomic, so concurrent submissions of the same
// reference cannot both be accepted.
func (s *SlipStore) PutIfAbsent(ctx context.Context, transRef string, payload []byte) (bool, error) {
	return s.RDB.SetNX(ctx, s.key(transRef), payload, 0).Result()
}

func (s *SlipStore) key(transRef string) string { return s.Prefix + ":" + transRef }
