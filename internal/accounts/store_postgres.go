// Copyright (c) 2026 Ambutrack. All rights reserved.

package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/postgres"
	"github.com/emsgrid/ambutrack/internal/platform/sec"
)

// PostgresAccountStore persists accounts in PostgreSQL.
//
// Ownership checks are pushed into SQL WHERE clauses so that the
// authorization check and the mutation commit or fail as one statement.
type PostgresAccountStore struct {
	db postgres.Querier
}

// NewPostgresAccountStore creates a [PostgresAccountStore] backed by db.
func NewPostgresAccountStore(db postgres.Querier) *PostgresAccountStore {
	return &PostgresAccountStore{db: db}
}

const accountColumns = `id, username, role, owner_id, password_hash, password_salt, password_reset_required`

// FindByID loads an account by primary key.
func (store *PostgresAccountStore) FindByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return store.scanAccount(store.db.QueryRow(ctx, query, id))
}

// FindByUsername loads an account by its unique username.
func (store *PostgresAccountStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	return store.scanAccount(store.db.QueryRow(ctx, query, username))
}

func (store *PostgresAccountStore) scanAccount(row pgx.Row) (*Account, error) {
	var (
		account Account
		role    string
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&role,
		&account.OwnerID,
		&account.PasswordHash,
		&account.PasswordSalt,
		&account.PasswordResetRequired,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}

	parsed, ok := sec.ParseRole(role)
	if !ok {
		// A role outside the enum means the table and the code disagree.
		return nil, apperr.Internal(fmt.Errorf("account %s has unknown role %q", account.ID, role))
	}
	account.Role = parsed

	return &account, nil
}

// Insert stores a new account row.
func (store *PostgresAccountStore) Insert(ctx context.Context, account *Account) error {
	query := `INSERT INTO accounts (id, username, role, owner_id, password_hash, password_salt, password_reset_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := store.db.Exec(ctx, query,
		account.ID,
		account.Username,
		string(account.Role),
		account.OwnerID,
		account.PasswordHash,
		account.PasswordSalt,
		account.PasswordResetRequired,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperr.Internal(fmt.Errorf("username %q already taken: %w", account.Username, err))
		}
		return apperr.Internal(err)
	}

	return nil
}

// ResetCredential atomically replaces the credential of an owned account and
// forces it back into the reset-required state. Zero rows affected collapses
// "absent" and "not owned by ownerID" into ErrUserNotFound.
func (store *PostgresAccountStore) ResetCredential(ctx context.Context, ownerID, accountID string, hash, salt []byte) error {
	query := `UPDATE accounts
		SET password_hash = $3, password_salt = $4, password_reset_required = TRUE
		WHERE id = $1 AND owner_id = $2`

	tag, err := store.db.Exec(ctx, query, accountID, ownerID, hash, salt)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateCredential replaces an account's own credential and clears the
// reset-required flag.
func (store *PostgresAccountStore) UpdateCredential(ctx context.Context, accountID string, hash, salt []byte) error {
	query := `UPDATE accounts
		SET password_hash = $2, password_salt = $3, password_reset_required = FALSE
		WHERE id = $1`

	tag, err := store.db.Exec(ctx, query, accountID, hash, salt)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteOwned removes an owned account. Owned rows in dependent tables go
// with it through ON DELETE CASCADE.
func (store *PostgresAccountStore) DeleteOwned(ctx context.Context, ownerID, accountID string) error {
	query := `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`

	tag, err := store.db.Exec(ctx, query, accountID, ownerID)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// PostgresSessionStore persists sessions in PostgreSQL.
//
// Tokens are opaque strings generated by the caller; the store never
// inspects them. Session validity is joined against the owning account on
// every lookup, so deleting an account invalidates its sessions in the same
// statement that removes them.
type PostgresSessionStore struct {
	db postgres.Querier
}

// NewPostgresSessionStore creates a [PostgresSessionStore] backed by db.
func NewPostgresSessionStore(db postgres.Querier) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// Create stores a session token for an account.
func (store *PostgresSessionStore) Create(ctx context.Context, token, accountID string) error {
	query := `INSERT INTO sessions (token, account_id) VALUES ($1, $2)`

	if _, err := store.db.Exec(ctx, query, token, accountID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// Lookup resolves a token into its account id and the account's current
// reset-required flag in one round trip.
func (store *PostgresSessionStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	query := `SELECT accounts.id, accounts.password_reset_required
		FROM sessions
		JOIN accounts ON sessions.account_id = accounts.id
		WHERE sessions.token = $1`

	var (
		accountID     string
		resetRequired bool
	)

	err := store.db.QueryRow(ctx, query, token).Scan(&accountID, &resetRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, ErrInvalidToken
		}
		return "", false, apperr.Internal(err)
	}

	return accountID, resetRequired, nil
}

// Delete removes a session token. Deleting an absent token is a no-op.
func (store *PostgresSessionStore) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`

	if _, err := store.db.Exec(ctx, query, token); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
