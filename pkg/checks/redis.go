package checks

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// SetMembership is the subset of redis.UniversalClient used by the Redis checks.
type SetMembership interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

// RedisAbsent passes when the value is not a member of the Redis set key.
// Typical use is a set of taken usernames or blocked domains.
func RedisAbsent(client SetMembership, key string, opts ...Option) validator.AsyncPredicate {
	return redisMembership(client, key, false, newOptions(DefaultTakenMessage, opts))
}

// RedisPresent passes when the value is a member of the Redis set key.
func RedisPresent(client SetMembership, key string, opts ...Option) validator.AsyncPredicate {
	return redisMembership(client, key, true, newOptions(DefaultNotFoundMessage, opts))
}

func redisMembership(client SetMembership, key string, want bool, o options) validator.AsyncPredicate {
	return func(ctx context.Context, value any) error {
		m, ok := member(value)
		if !ok {
			return nil
		}
		found, err := client.SIsMember(ctx, key, m).Result()
		if err != nil {
			return o.backendFailed(ctx, "redis:"+key, err)
		}
		if found != want {
			return errors.New(o.message)
		}
		return nil
	}
}
