// Copyright (c) 2026 Ambutrack. All rights reserved.

package accounts

import "context"

// # Account Data Access

// AccountStore defines the data access contract for accounts.
//
// Implementations own all entity state; every returned record is an immutable
// snapshot valid only for the duration of the call. The owner-checked
// mutations embed the authorization predicate directly in the write and must
// execute in a single round trip.
type AccountStore interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated snapshot
		  - error: ErrUserNotFound, or an opaque infrastructure failure
	*/
	FindByID(ctx context.Context, id string) (*Account, error)

	/*
		FindByUsername returns the account with the given unique username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated snapshot
		  - error: ErrUserNotFound, or an opaque infrastructure failure
	*/
	FindByUsername(ctx context.Context, username string) (*Account, error)

	/*
		Insert persists a brand-new account.

		No username uniqueness pre-check is performed; a uniqueness violation
		surfaces as an opaque infrastructure failure.

		Parameters:
		  - ctx: context.Context
		  - account: *Account

		Returns:
		  - error: Opaque infrastructure failure
	*/
	Insert(ctx context.Context, account *Account) error

	/*
		ResetCredential replaces the credential material of accountID, but only
		where the stored owner_id equals ownerID, in one atomic round trip with
		no separate existence check. It also sets password_reset_required to
		true.

		Parameters:
		  - ctx: context.Context
		  - ownerID: string (the caller claiming ownership)
		  - accountID: string (the target)
		  - hash: []byte
		  - salt: []byte

		Returns:
		  - error: ErrUserNotFound when the target is missing or owned by
		    someone else (the two cases are never distinguished), or an
		    opaque failure
	*/
	ResetCredential(ctx context.Context, ownerID, accountID string, hash, salt []byte) error

	/*
		UpdateCredential replaces the credential material of accountID and
		clears password_reset_required.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - hash: []byte
		  - salt: []byte

		Returns:
		  - error: ErrUserNotFound, or an opaque infrastructure failure
	*/
	UpdateCredential(ctx context.Context, accountID string, hash, salt []byte) error

	/*
		DeleteOwned removes accountID where the stored owner_id equals ownerID,
		in one atomic round trip. Owned resources (settings, phones, tracked
		ambulances, sessions) cascade at the schema level.

		Parameters:
		  - ctx: context.Context
		  - ownerID: string
		  - accountID: string

		Returns:
		  - error: ErrUserNotFound (same collapsing as ResetCredential), or an
		    opaque infrastructure failure
	*/
	DeleteOwned(ctx context.Context, ownerID, accountID string) error
}

// # Session Data Access

// SessionStore defines the data access contract for opaque session tokens.
type SessionStore interface {

	/*
		Create persists a new token to account mapping.

		Parameters:
		  - ctx: context.Context
		  - token: string (hex-encoded 256-bit value)
		  - accountID: string

		Returns:
		  - error: Opaque infrastructure failure
	*/
	Create(ctx context.Context, token, accountID string) error

	/*
		Lookup resolves a token into the authenticated account joined with its
		reset-required flag.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - string: Account ID
		  - bool: password_reset_required of the backing account
		  - error: ErrInvalidToken, or an opaque infrastructure failure
	*/
	Lookup(ctx context.Context, token string) (string, bool, error)

	/*
		Delete removes the session record if present. Deleting an absent token
		is not an error.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - error: Opaque infrastructure failure
	*/
	Delete(ctx context.Context, token string) error
}
