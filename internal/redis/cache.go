package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

const keyPrefix = "medusa:"

// CachedStore is a read-through cache in front of another scheduling.Store.
// Redis failures degrade to direct reads; they never fail a resolution.
type CachedStore struct {
	inner scheduling.Store
	rdb   *redis.Client
	ttl   time.Duration
}

var _ scheduling.Store = (*CachedStore)(nil)

func NewCachedStore(inner scheduling.Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, rdb: rdb, ttl: ttl}
}

func orgPrefix(organizationID int) string {
	return fmt.Sprintf("%sorg:%d:", keyPrefix, organizationID)
}

func schedulesKey(organizationID int, targetType model.TargetType, targetID int) string {
	return fmt.Sprintf("%sschedules:%s:%d", orgPrefix(organizationID), targetType, targetID)
}

func prioritiesKey(organizationID int) string {
	return orgPrefix(organizationID) + "priorities"
}

func indexKey(organizationID int) string {
	return orgPrefix(organizationID) + "keys"
}

func rulesKey(scheduleID int) string {
	return fmt.Sprintf("%srules:%d", keyPrefix, scheduleID)
}

func displayKey(displayID int) string {
	return fmt.Sprintf("%sdisplay:%d", keyPrefix, displayID)
}

func (c *CachedStore) ListSchedules(ctx context.Context, organizationID int, targetType model.TargetType, targetID int) ([]model.Schedule, error) {
	return readThrough(ctx, c, schedulesKey(organizationID, targetType, targetID), func() ([]model.Schedule, error) {
		schedules, err := c.inner.ListSchedules(ctx, organizationID, targetType, targetID)
		if err != nil {
			return nil, err
		}
		// rule entries are keyed by schedule; the index ties them to the organization
		keys := make([]string, 0, len(schedules))
		for _, s := range schedules {
			keys = append(keys, rulesKey(s.ID))
		}
		c.index(ctx, organizationID, keys...)
		return schedules, nil
	})
}

func (c *CachedStore) ListRules(ctx context.Context, scheduleID int) ([]model.SchedulingRule, error) {
	return readThrough(ctx, c, rulesKey(scheduleID), func() ([]model.SchedulingRule, error) {
		return c.inner.ListRules(ctx, scheduleID)
	})
}

func (c *CachedStore) ListContentPriorities(ctx context.Context, organizationID int) ([]model.ContentPriority, error) {
	return readThrough(ctx, c, prioritiesKey(organizationID), func() ([]model.ContentPriority, error) {
		return c.inner.ListContentPriorities(ctx, organizationID)
	})
}

// GetDisplay caches found displays only; a miss is always re-checked.
func (c *CachedStore) GetDisplay(ctx context.Context, displayID int) (*model.Display, error) {
	return readThrough(ctx, c, displayKey(displayID), func() (*model.Display, error) {
		display, err := c.inner.GetDisplay(ctx, displayID)
		if err != nil {
			return nil, err
		}
		if display != nil {
			c.index(ctx, display.OrganizationID, displayKey(displayID))
		}
		return display, nil
	})
}

// InvalidateOrganization drops every cached entry of the organization: the
// keys under its prefix and the rule and display entries in its index.
// Other organizations keep their entries.
func (c *CachedStore) InvalidateOrganization(ctx context.Context, organizationID int) (int, error) {
	members, err := c.rdb.SMembers(ctx, indexKey(organizationID)).Result()
	if err != nil {
		return 0, fmt.Errorf("reading cache index: %w", err)
	}
	removed := 0
	if len(members) > 0 {
		n, err := c.rdb.Del(ctx, members...).Result()
		if err != nil {
			return 0, fmt.Errorf("deleting cache keys: %w", err)
		}
		removed = int(n)
	}

	n, err := c.deleteMatching(ctx, orgPrefix(organizationID)+"*")
	removed += n
	if err != nil {
		return removed, err
	}
	log.Info().Int("organization_id", organizationID).Int("keys", removed).Msg("schedule cache invalidated")
	return removed, nil
}

// index records keys that belong to the organization but live outside its
// prefix. It outlives the entries it lists: a rule entry is written at most
// one TTL after the schedule list that indexed it.
func (c *CachedStore) index(ctx context.Context, organizationID int, keys ...string) {
	if len(keys) == 0 {
		return
	}
	members := make([]interface{}, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	idx := indexKey(organizationID)
	_, err := c.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.SAdd(ctx, idx, members...)
		p.Expire(ctx, idx, 2*c.ttl)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("key", idx).Msg("cache index write failed")
	}
}

func (c *CachedStore) deleteMatching(ctx context.Context, pattern string) (int, error) {
	removed := 0
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, 100)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.rdb.Del(ctx, batch...).Result()
		removed += int(n)
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return removed, fmt.Errorf("deleting cache keys: %w", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scanning cache keys %q: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return removed, fmt.Errorf("deleting cache keys: %w", err)
	}
	return removed, nil
}

func readThrough[T any](ctx context.Context, c *CachedStore, key string, load func() (T, error)) (T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal(raw, &v)
		if jsonErr == nil {
			return v, nil
		}
		log.Warn().Err(jsonErr).Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return v, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return v, nil
}
