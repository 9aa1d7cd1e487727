// Copyright (c) 2026 Ambutrack. All rights reserved.

package accounts

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/constants"
)

// RedisSessionStore keeps session tokens in Redis while the accounts
// themselves stay in the primary store.
//
// Lookup re-reads the owning account on every call so that the
// reset-required flag is always current and so that sessions of a deleted
// account die on first use instead of lingering until expiry.
type RedisSessionStore struct {
	client   *redis.Client
	accounts AccountStore
}

// NewRedisSessionStore creates a [RedisSessionStore] over client, resolving
// accounts through accountStore.
func NewRedisSessionStore(client *redis.Client, accountStore AccountStore) *RedisSessionStore {
	return &RedisSessionStore{
		client:   client,
		accounts: accountStore,
	}
}

func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

// Create stores a session token for an account.
func (store *RedisSessionStore) Create(ctx context.Context, token, accountID string) error {
	if err := store.client.Set(ctx, sessionKey(token), accountID, 0).Err(); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// Lookup resolves a token into its account id and the account's current
// reset-required flag.
func (store *RedisSessionStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	accountID, err := store.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, ErrInvalidToken
		}
		return "", false, apperr.Internal(err)
	}

	account, err := store.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// The account is gone; reap the orphaned session. A failed
			// reap is tolerable, the token stays invalid either way.
			_ = store.client.Del(ctx, sessionKey(token)).Err()
			return "", false, ErrInvalidToken
		}
		return "", false, err
	}

	return account.ID, account.PasswordResetRequired, nil
}

// Delete removes a session token. Deleting an absent token is a no-op.
func (store *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := store.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
