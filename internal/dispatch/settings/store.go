// Copyright (c) 2026 Ambutrack. All rights reserved.

package settings

import (
	"context"
	"time"

	"github.com/emsgrid/ambutrack/pkg/geo"
)

// Manager reads and writes one account's dispatcher preferences.
//
// Every operation is scoped to an account id; writes against an account
// that no longer exists fail the same way the account authority reports a
// missing user.
type Manager interface {
	/*
		Get loads the account's settings, applying defaults for anything the
		account never configured.

		Parameters:
		  - ctx: context.Context
		  - accountID: string

		Returns:
		  - *Settings: The account's settings
		  - error: accounts.ErrUserNotFound, or an opaque failure
	*/
	Get(ctx context.Context, accountID string) (*Settings, error)

	/*
		SetHospitalLocation stores the account's hospital drop-off point.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - location: geo.Point

		Returns:
		  - error: accounts.ErrUserNotFound, or an opaque failure
	*/
	SetHospitalLocation(ctx context.Context, accountID string, location geo.Point) error

	/*
		SetETAAlert stores the account's alert threshold.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - threshold: time.Duration (positive, at most MaxETAAlert)

		Returns:
		  - error: ErrETAAlertOutOfRange, accounts.ErrUserNotFound, or an
		    opaque failure
	*/
	SetETAAlert(ctx context.Context, accountID string, threshold time.Duration) error

	/*
		AddPhone registers a notification phone number. An empty label is
		derived from the number.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - number: string
		  - label: string

		Returns:
		  - *PhoneNumber: The stored number with its generated id
		  - error: accounts.ErrUserNotFound, or an opaque failure
	*/
	AddPhone(ctx context.Context, accountID, number, label string) (*PhoneNumber, error)

	/*
		ListPhones returns the account's phone numbers in insertion order.

		Parameters:
		  - ctx: context.Context
		  - accountID: string

		Returns:
		  - []*PhoneNumber: The numbers, possibly empty
		  - error: Opaque infrastructure failure
	*/
	ListPhones(ctx context.Context, accountID string) ([]*PhoneNumber, error)

	/*
		DeletePhone removes one phone number from the account's list.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - phoneID: string

		Returns:
		  - error: ErrPhoneNotFound, or an opaque failure
	*/
	DeletePhone(ctx context.Context, accountID, phoneID string) error
}
