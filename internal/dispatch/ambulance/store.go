// Copyright (c) 2026 Ambutrack. All rights reserved.

package ambulance

import (
	"context"
	"time"

	"github.com/emsgrid/ambutrack/pkg/geo"
)

// Tracker records and serves ambulance positions for one account's fleet.
//
// Position updates follow last-write-wins on the reported timestamp:
// updates arrive from mobile units over unreliable links and may be
// delivered out of order, so a report older than the stored one is dropped
// without error.
type Tracker interface {
	/*
		Register adds an ambulance to an account's fleet, or renames it if the
		id is already registered under the same account. An empty name falls
		back to the id.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - ambulanceID: string
		  - name: string
		  - location: geo.Point
		  - at: time.Time (the report timestamp, not server receipt time)

		Returns:
		  - error: ErrAmbulanceIDTaken when the id belongs to another
		    account's ambulance, or an opaque infrastructure failure
	*/
	Register(ctx context.Context, accountID, ambulanceID, name string, location geo.Point, at time.Time) error

	/*
		UpdateLocation applies a position report if it is newer than the
		stored one. A stale report is a silent no-op.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - ambulanceID: string
		  - location: geo.Point
		  - at: time.Time

		Returns:
		  - error: ErrAmbulanceNotFound, or an opaque infrastructure failure
	*/
	UpdateLocation(ctx context.Context, accountID, ambulanceID string, location geo.Point, at time.Time) error

	/*
		Get loads one ambulance.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - ambulanceID: string

		Returns:
		  - *Ambulance: The ambulance, or nil when unknown
		  - error: Opaque infrastructure failure
	*/
	Get(ctx context.Context, accountID, ambulanceID string) (*Ambulance, error)

	/*
		RecentlyUpdated lists the account's ambulances that reported within
		the given window, most recent first.

		Parameters:
		  - ctx: context.Context
		  - accountID: string
		  - window: time.Duration

		Returns:
		  - []*Ambulance: Matching ambulances, possibly empty
		  - error: Opaque infrastructure failure
	*/
	RecentlyUpdated(ctx context.Context, accountID string, window time.Duration) ([]*Ambulance, error)
}
