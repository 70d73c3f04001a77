package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"scaletrend/internal/core/domain"
)

var _ domain.EntryRepository = (*CachedEntryRepository)(nil)

// CachedEntryRepository keeps a read-through redis cache of the persisted
// per-user entry list, invalidated on every write. Derived statistics are
// deliberately never cached; they are recomputed from this list on read.
type CachedEntryRepository struct {
	next  domain.EntryRepository
	cache *redis.Client
}

func NewCachedEntryRepository(next domain.EntryRepository, cache *redis.Client) *CachedEntryRepository {
	return &CachedEntryRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedEntryRepository) cacheKey(userID string) string {
	return fmt.Sprintf("entries:%s", userID)
}

func (r *CachedEntryRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedEntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var entries []*domain.WeightEntry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entries, err := r.next.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entries, nil
}

func (r *CachedEntryRepository) Upsert(ctx context.Context, entry *domain.WeightEntry) error {
	if err := r.next.Upsert(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

func (r *CachedEntryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	if err := r.next.DeleteByDate(ctx, userID, date); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
