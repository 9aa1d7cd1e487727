// Copyright (c) 2026 Ambutrack. All rights reserved.

/*
Package accounts implements the account and session authority.

It defines the core domain entities (Account, Session) and the logic for
account lifecycle, authentication, and session validity under the ownership
hierarchy.

# Architecture

This layer is the "Truth" of the system. Every mutating operation is guarded
by an atomic existence-plus-authorization check executed inside the store, so
two concurrent callers can never race a check against a write for the same
account. The authority itself holds no state between calls.
*/
package accounts

import (
	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered account in the ownership hierarchy.
type Account struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     sec.Role `json:"role"`

	// OwnerID references the account that created and manages this one.
	// It is nil only for site_admin accounts.
	OwnerID *string `json:"owner_id,omitempty"`

	// Credential material. Never stored or logged in cleartext.
	PasswordHash []byte `json:"-"`
	PasswordSalt []byte `json:"-"`

	// PasswordResetRequired gates session capability: while true, a session
	// token is valid only for changing the password.
	PasswordResetRequired bool `json:"password_reset_required"`
}

// Session maps an opaque 256-bit bearer token to an authenticated account.
type Session struct {
	Token     string `json:"-"` // Omitted from JSON for security.
	AccountID string `json:"account_id"`
}

// # Session Purpose

// Purpose declares what a caller intends to do with a retrieved session.
type Purpose int

const (
	// PurposeOther covers every action except changing a password.
	PurposeOther Purpose = iota

	// PurposeChangePassword is the only purpose a reset-required account's
	// token is valid for.
	PurposeChangePassword
)

// # Constraints

const (
	// TempPasswordLength is the length of generated one-time passwords.
	TempPasswordLength = 16
)

// # Error Taxonomy
//
// Each operation returns values from a closed set so callers can match
// exhaustively with errors.Is. Infrastructure failures are wrapped by
// apperr.Internal and stay opaque.

var (
	// ErrOwnerNotFound is returned by CreateAccount when the owner id does
	// not resolve to an existing account.
	ErrOwnerNotFound = apperr.New("OWNER_NOT_FOUND", "Specified owner account not found")

	// ErrInvalidOwnerRole is returned when the ownership hierarchy forbids
	// the requested pairing. Checked strictly after owner existence.
	ErrInvalidOwnerRole = apperr.New("INVALID_OWNER_ROLE",
		"A site_admin can only create admins, an admin can only create users, a user cannot create accounts")

	// ErrUserNotFound deliberately covers both "no such account" and
	// "account exists but the caller is not its owner" for owner-checked
	// operations, so callers cannot probe for account existence.
	ErrUserNotFound = apperr.New("USER_NOT_FOUND",
		"The targeted user is not found, or the specified owner does not own the targeted account")

	// ErrIncorrectPassword is returned on credential mismatch. At the login
	// boundary it is intentionally distinct from ErrUserNotFound.
	ErrIncorrectPassword = apperr.New("INCORRECT_PASSWORD", "Incorrect password")

	// ErrInvalidToken is returned for unknown or destroyed session tokens,
	// before any purpose checking.
	ErrInvalidToken = apperr.New("INVALID_TOKEN", "Session token is not valid or does not exist")

	// ErrInvalidPurpose is returned when a reset-required account presents a
	// valid token for anything other than changing its password.
	ErrInvalidPurpose = apperr.New("INVALID_PURPOSE", "The user must change the password")
)
