// Copyright (c) 2026 Ambutrack. All rights reserved.

package eta

import (
	"context"
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/postgres"
	"github.com/emsgrid/ambutrack/pkg/geo"
	"github.com/emsgrid/ambutrack/pkg/uuidv7"
)

// ArchiveFinder wraps another [Finder] and records every successful estimate
// for later analysis of provider accuracy.
type ArchiveFinder struct {
	inner Finder
	db    postgres.Querier
}

// NewArchiveFinder wraps inner with archiving into db.
func NewArchiveFinder(inner Finder, db postgres.Querier) *ArchiveFinder {
	return &ArchiveFinder{inner: inner, db: db}
}

func (finder *ArchiveFinder) ETA(ctx context.Context, ambulanceID string, from, to geo.Point) (time.Duration, error) {
	duration, err := finder.inner.ETA(ctx, ambulanceID, from, to)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO archive_etas (id, ambulance_id, from_lon, from_lat, to_lon, to_lat, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = finder.db.Exec(ctx, query,
		uuidv7.New(), ambulanceID,
		from.Lon, from.Lat, to.Lon, to.Lat,
		duration.Seconds(), time.Now().UTC(),
	)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	return duration, nil
}
