// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package ambulance maintains the live position of each ambulance in a
// dispatcher's fleet.
package ambulance

import (
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

// Ambulance is a vehicle reporting its position, scoped to the account that
// registered it.
type Ambulance struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	Location    geo.Point `json:"location"`
	LastUpdated time.Time `json:"last_updated"`
}

var (
	// ErrAmbulanceNotFound reports a location update for an id that was never
	// registered under the given account.
	ErrAmbulanceNotFound = apperr.New("AMBULANCE_NOT_FOUND", "ambulance not found")

	// ErrAmbulanceIDTaken reports a registration whose id already belongs to
	// another account's ambulance.
	ErrAmbulanceIDTaken = apperr.New("AMBULANCE_ID_TAKEN", "ambulance id is registered to another account")
)
