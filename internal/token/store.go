package token

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
)

// Store keeps issued refresh-token ids in Redis so they can be revoked.
// With a nil client the store is a no-op and refresh tokens are trusted
// on signature and expiry alone.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) key(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (s *Store) Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, s.key(jti), userID, ttl).Err()
}

func (s *Store) Validate(ctx context.Context, jti string) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.Get(ctx, s.key(jti)).Err(); err != nil {
		if err == redis.Nil {
			return httperr.ErrBusiness("refresh_token_revoked")
		}
		return err
	}
	return nil
}

func (s *Store) Revoke(ctx context.Context, jti string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, s.key(jti)).Err()
}
