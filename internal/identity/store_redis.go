// Copyright (c) 2026 Taskforge. All rights reserved.

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/taskforge/internal/platform/constants"
)

// RedisThrottleRepository implements ThrottleRepository using Redis.
//
// Counter keys carry a sliding TTL so an idle IP is forgotten automatically.
type RedisThrottleRepository struct {
	client *redis.Client
}

// NewThrottleRepository creates a new Redis-backed ThrottleRepository.
func NewThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

/*
Failures returns the current failure count for an IP.

Parameters:
  - context: context.Context
  - ip: string

Returns:
  - int64: Current count, 0 when the key is absent or expired
  - error: Connectivity errors
*/
func (repository *RedisThrottleRepository) Failures(context context.Context, ip string) (int64, error) {
	key := constants.RedisPrefixLoginFailures + ip

	count, err := repository.client.Get(context, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	return count, nil
}

/*
RecordFailure increments the failure counter for an IP.

Description: The TTL is refreshed on every failure, so the window slides
while an attacker keeps probing.

Parameters:
  - context: context.Context
  - ip: string

Returns:
  - int64: Counter value after the increment
  - error: Persistence failures
*/
func (repository *RedisThrottleRepository) RecordFailure(context context.Context, ip string) (int64, error) {
	key := constants.RedisPrefixLoginFailures + ip

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	if err := repository.client.Expire(context, key, constants.LoginThrottleWindow).Err(); err != nil {
		return count, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
	}

	return count, nil
}

/*
Reset clears the failure counter for an IP.

Parameters:
  - context: context.Context
  - ip: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisThrottleRepository) Reset(context context.Context, ip string) error {
	key := constants.RedisPrefixLoginFailures + ip

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	return nil
}
