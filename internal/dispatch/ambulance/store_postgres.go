// Copyright (c) 2026 Ambutrack. All rights reserved.

package ambulance

import (
	"context"
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/postgres"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

// PostgresTracker implements [Tracker] on PostgreSQL.
type PostgresTracker struct {
	db postgres.Querier
}

// NewPostgresTracker creates a [PostgresTracker] backed by db.
func NewPostgresTracker(db postgres.Querier) *PostgresTracker {
	return &PostgresTracker{db: db}
}

func (tracker *PostgresTracker) Register(ctx context.Context, accountID, ambulanceID, name string, location geo.Point, at time.Time) error {
	if name == "" {
		name = ambulanceID
	}

	// The conflict update only applies within the registering account; an id
	// held by another account's ambulance produces zero affected rows.
	query := `INSERT INTO ambulances (id, account_id, name, lon, lat, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		WHERE ambulances.account_id = EXCLUDED.account_id`

	tag, err := tracker.db.Exec(ctx, query, ambulanceID, accountID, name, location.Lon, location.Lat, at)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAmbulanceIDTaken
	}

	return nil
}

func (tracker *PostgresTracker) UpdateLocation(ctx context.Context, accountID, ambulanceID string, location geo.Point, at time.Time) error {
	// One statement decides both questions: does the row exist, and was the
	// report fresh enough to win. A stale report matches the target CTE but
	// not the update CTE.
	query := `WITH target AS (
			SELECT id FROM ambulances WHERE id = $1 AND account_id = $2
		), updated AS (
			UPDATE ambulances
			SET lon = $3, lat = $4, last_updated = $5
			WHERE id = $1 AND account_id = $2 AND last_updated < $5
			RETURNING id
		)
		SELECT EXISTS(SELECT 1 FROM target), EXISTS(SELECT 1 FROM updated)`

	var found, applied bool

	err := tracker.db.QueryRow(ctx, query, ambulanceID, accountID, location.Lon, location.Lat, at).
		Scan(&found, &applied)
	if err != nil {
		return apperr.Internal(err)
	}

	if !found {
		return ErrAmbulanceNotFound
	}

	return nil
}

func (tracker *PostgresTracker) Get(ctx context.Context, accountID, ambulanceID string) (*Ambulance, error) {
	query := `SELECT id, account_id, name, lon, lat, last_updated
		FROM ambulances
		WHERE id = $1 AND account_id = $2`

	rows, err := tracker.db.Query(ctx, query, ambulanceID, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rowsErr(rows.Err())
	}

	a, err := scanAmbulance(rows)
	if err != nil {
		return nil, err
	}

	return a, rowsErr(rows.Err())
}

func (tracker *PostgresTracker) RecentlyUpdated(ctx context.Context, accountID string, window time.Duration) ([]*Ambulance, error) {
	query := `SELECT id, account_id, name, lon, lat, last_updated
		FROM ambulances
		WHERE account_id = $1 AND last_updated >= $2
		ORDER BY last_updated DESC`

	rows, err := tracker.db.Query(ctx, query, accountID, time.Now().Add(-window))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	result := make([]*Ambulance, 0)

	for rows.Next() {
		a, err := scanAmbulance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}

	return result, rowsErr(rows.Err())
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAmbulance(row scanner) (*Ambulance, error) {
	var a Ambulance

	err := row.Scan(&a.ID, &a.AccountID, &a.Name, &a.Location.Lon, &a.Location.Lat, &a.LastUpdated)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &a, nil
}

func rowsErr(err error) error {
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
