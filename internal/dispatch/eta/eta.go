// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package eta estimates driving time between two points.
package eta

import (
	"context"
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

// ErrNoRoutes reports that the routing provider found no drivable route
// between the two points.
var ErrNoRoutes = apperr.New("NO_ROUTES", "no route between the given points")

// Finder estimates how long an ambulance needs to drive from one point to
// another under current traffic.
type Finder interface {
	/*
		ETA estimates the driving duration from one point to another.

		Parameters:
		  - ctx: context.Context
		  - ambulanceID: string (for attribution in archives and logs)
		  - from: geo.Point
		  - to: geo.Point

		Returns:
		  - time.Duration: Estimated driving time
		  - error: ErrNoRoutes, or an opaque provider failure
	*/
	ETA(ctx context.Context, ambulanceID string, from, to geo.Point) (time.Duration, error)
}
