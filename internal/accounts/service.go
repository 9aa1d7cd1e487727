// Copyright (c) 2026 Ambutrack. All rights reserved.

package accounts

import (
	"context"
	"errors"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/sec"
	"github.com/emsgrid/ambutrack/pkg/uuidv7"
)

// Authority implements every public account and session operation.
//
// # Concurrency
//
// The authority is stateless between calls and requires no internal locking:
// each operation performs at most one authorization-checked read or
// read-modify-write against the stores, and random draws come from a
// concurrency-safe entropy source. Callers impose deadlines via ctx.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, ownership
// checks, or session logic must be reviewed accordingly.
type Authority struct {
	accounts AccountStore
	sessions SessionStore
	codec    *sec.Codec
}

// NewAuthority constructs an [Authority] with its store and codec dependencies.
func NewAuthority(accountStore AccountStore, sessionStore SessionStore, codec *sec.Codec) *Authority {
	return &Authority{
		accounts: accountStore,
		sessions: sessionStore,
		codec:    codec,
	}
}

// # Account Lifecycle

/*
CreateAccount creates an account owned by ownerID and returns the new
account's id together with its one-time temporary password.

The owner must exist (ErrOwnerNotFound) and the ownership hierarchy must
permit the pairing (ErrInvalidOwnerRole, checked strictly after existence):
a site_admin may create admins, an admin may create users, nothing else.

The new account always starts with password_reset_required set: the
cleartext temporary password is returned exactly once and must be changed
before unrestricted use.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - role: sec.Role (the desired role of the new account)
  - username: string

Returns:
  - string: New account ID
  - string: Cleartext temporary password
  - error: ErrOwnerNotFound, ErrInvalidOwnerRole, or an opaque failure
    (including username uniqueness violations)
*/
func (authority *Authority) CreateAccount(ctx context.Context, ownerID string, role sec.Role, username string) (string, string, error) {
	owner, err := authority.accounts.FindByID(ctx, ownerID)
	if err != nil {
		// A missing owner is its own condition, distinct from a missing
		// target in the owner-checked operations.
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrOwnerNotFound
		}
		return "", "", err
	}

	if !owner.Role.CanOwn(role) {
		return "", "", ErrInvalidOwnerRole
	}

	return authority.insertAccount(ctx, username, role, &ownerID)
}

/*
CreateSiteAdmin creates an ownerless site_admin account.

This bypasses the hierarchy check and exists only for bootstrap tooling; it
is never reachable from an authenticated operation.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - string: New account ID
  - string: Cleartext temporary password
  - error: Opaque infrastructure failure
*/
func (authority *Authority) CreateSiteAdmin(ctx context.Context, username string) (string, string, error) {
	return authority.insertAccount(ctx, username, sec.RoleSiteAdmin, nil)
}

// insertAccount generates fresh credential material and persists the account.
func (authority *Authority) insertAccount(ctx context.Context, username string, role sec.Role, ownerID *string) (string, string, error) {
	tempPassword, err := authority.codec.TempPassword(TempPasswordLength)
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	salt, err := authority.codec.Salt()
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	account := &Account{
		ID:                    uuidv7.New(),
		Username:              username,
		Role:                  role,
		OwnerID:               ownerID,
		PasswordHash:          sec.HashPassword([]byte(tempPassword), salt),
		PasswordSalt:          salt,
		PasswordResetRequired: true,
	}

	if err := authority.accounts.Insert(ctx, account); err != nil {
		return "", "", err
	}

	return account.ID, tempPassword, nil
}

/*
ResetPassword replaces the credential of accountID with fresh material and
returns the new one-time temporary password.

The write is a single atomic owner-checked round trip: it succeeds only where
the stored owner_id equals ownerID, so "target missing" and "target owned by
someone else" are indistinguishable (both ErrUserNotFound). The target is
forced back into the reset-required state.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - accountID: string

Returns:
  - string: Cleartext temporary password
  - error: ErrUserNotFound, or an opaque infrastructure failure
*/
func (authority *Authority) ResetPassword(ctx context.Context, ownerID, accountID string) (string, error) {
	tempPassword, err := authority.codec.TempPassword(TempPasswordLength)
	if err != nil {
		return "", apperr.Internal(err)
	}

	salt, err := authority.codec.Salt()
	if err != nil {
		return "", apperr.Internal(err)
	}

	hash := sec.HashPassword([]byte(tempPassword), salt)

	if err := authority.accounts.ResetCredential(ctx, ownerID, accountID, hash, salt); err != nil {
		return "", err
	}

	return tempPassword, nil
}

/*
DeleteAccount removes accountID and all of its owned resources.

Same atomic owner-checked pattern and error collapsing as ResetPassword.
Cascading deletion of settings, phones, tracked ambulances, and sessions is
the store's referential-integrity contract.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - accountID: string

Returns:
  - error: ErrUserNotFound, or an opaque infrastructure failure
*/
func (authority *Authority) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	return authority.accounts.DeleteOwned(ctx, ownerID, accountID)
}

/*
ChangePassword rotates an account's credential after verifying the current
password, and clears the reset-required flag.

No password-strength policy is enforced at this layer; strength validation is
a caller-side concern.

Parameters:
  - ctx: context.Context
  - accountID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: ErrUserNotFound, ErrIncorrectPassword, or an opaque failure
*/
func (authority *Authority) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := authority.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	// Recompute with the stored salt; constant-time comparison.
	if !sec.VerifyPassword([]byte(currentPassword), account.PasswordSalt, account.PasswordHash) {
		return ErrIncorrectPassword
	}

	salt, err := authority.codec.Salt()
	if err != nil {
		return apperr.Internal(err)
	}

	hash := sec.HashPassword([]byte(newPassword), salt)

	return authority.accounts.UpdateCredential(ctx, accountID, hash, salt)
}

// # Session Lifecycle

/*
Login authenticates a username/password pair and establishes a session.

Unlike the owner-checked operations, login intentionally distinguishes "no
such user" (ErrUserNotFound) from "wrong password" (ErrIncorrectPassword).
Multiple concurrent sessions per account are permitted.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - string: Opaque hex-encoded session token
  - error: ErrUserNotFound, ErrIncorrectPassword, or an opaque failure
*/
func (authority *Authority) Login(ctx context.Context, username, password string) (string, error) {
	account, err := authority.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !sec.VerifyPassword([]byte(password), account.PasswordSalt, account.PasswordHash) {
		return "", ErrIncorrectPassword
	}

	token, err := authority.codec.SessionToken()
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := authority.sessions.Create(ctx, token, account.ID); err != nil {
		return "", err
	}

	return token, nil
}

/*
DestroySession invalidates the given session token.

Idempotent: destroying an absent token is not an error. The only failure
path is infrastructure.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - error: Opaque infrastructure failure
*/
func (authority *Authority) DestroySession(ctx context.Context, token string) error {
	return authority.sessions.Delete(ctx, token)
}

/*
RetrieveAccount resolves a session token into the authenticated account id,
honoring the caller-declared purpose.

An unknown token fails with ErrInvalidToken before any state is consulted.
A reset-required account's token is valid only for PurposeChangePassword;
presenting it for anything else fails with ErrInvalidPurpose.

Parameters:
  - ctx: context.Context
  - token: string
  - purpose: Purpose

Returns:
  - string: Authenticated account ID
  - error: ErrInvalidToken, ErrInvalidPurpose, or an opaque failure
*/
func (authority *Authority) RetrieveAccount(ctx context.Context, token string, purpose Purpose) (string, error) {
	accountID, resetRequired, err := authority.sessions.Lookup(ctx, token)
	if err != nil {
		return "", err
	}

	if resetRequired && purpose != PurposeChangePassword {
		return "", ErrInvalidPurpose
	}

	return accountID, nil
}
