// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package tracking manages which ambulances a dispatcher is actively
// watching on the board.
package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emsgrid/ambutrack/internal/accounts"
	"github.com/emsgrid/ambutrack/internal/dispatch/ambulance"
	"github.com/emsgrid/ambutrack/internal/dispatch/settings"
	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/postgres"
)

// TrackedAmbulance is one board entry: the ambulance itself plus the
// dispatcher's annotations for this run.
type TrackedAmbulance struct {
	Ambulance ambulance.Ambulance `json:"ambulance"`

	// Label is the dispatcher's free-form name for the run.
	Label   string `json:"label"`
	Urgency string `json:"urgency"`

	// PhoneID selects the phone number to alert; nil disables alerting.
	// LeadTime is how far ahead of arrival the alert fires.
	PhoneID  *string       `json:"phone_id,omitempty"`
	LeadTime time.Duration `json:"lead_time"`

	// AlertDismissed records that the dispatcher acknowledged the ETA alert
	// for this run. It resets when tracking restarts.
	AlertDismissed bool      `json:"alert_dismissed"`
	TrackedAt      time.Time `json:"tracked_at"`
}

// Board persists the set of tracked ambulances per account.
type Board struct {
	db postgres.Querier
}

// NewBoard creates a [Board] backed by db.
func NewBoard(db postgres.Querier) *Board {
	return &Board{db: db}
}

// Track puts an ambulance on the board with the dispatcher's annotations.
// Re-tracking an already tracked ambulance replaces the annotations and
// resets the dismissed state.
func (board *Board) Track(ctx context.Context, accountID, ambulanceID, label, urgency string, phoneID *string, leadTime time.Duration) error {
	query := `INSERT INTO tracked_ambulances
			(ambulance_id, account_id, label, urgency, phone_id, lead_seconds, alert_dismissed, tracked_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		ON CONFLICT (ambulance_id, account_id)
		DO UPDATE SET label = EXCLUDED.label, urgency = EXCLUDED.urgency,
			phone_id = EXCLUDED.phone_id, lead_seconds = EXCLUDED.lead_seconds,
			alert_dismissed = FALSE, tracked_at = EXCLUDED.tracked_at`

	_, err := board.db.Exec(ctx, query,
		ambulanceID, accountID, label, urgency, phoneID,
		int(leadTime.Seconds()), time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			// The constraint name tells which reference broke.
			switch {
			case strings.Contains(pgErr.ConstraintName, "account"):
				return accounts.ErrUserNotFound
			case strings.Contains(pgErr.ConstraintName, "phone"):
				return settings.ErrPhoneNotFound
			default:
				return ambulance.ErrAmbulanceNotFound
			}
		}
		return apperr.Internal(err)
	}

	return nil
}

// ListTracked returns the account's board entries with their ambulances,
// oldest first.
func (board *Board) ListTracked(ctx context.Context, accountID string) ([]*TrackedAmbulance, error) {
	query := `SELECT a.id, a.account_id, a.name, a.lon, a.lat, a.last_updated,
			t.label, t.urgency, t.phone_id, t.lead_seconds, t.alert_dismissed, t.tracked_at
		FROM tracked_ambulances t
		JOIN ambulances a ON t.ambulance_id = a.id
		WHERE t.account_id = $1
		ORDER BY t.tracked_at ASC`

	rows, err := board.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	tracked := make([]*TrackedAmbulance, 0)

	for rows.Next() {
		var (
			entry       TrackedAmbulance
			leadSeconds int
		)

		err := rows.Scan(
			&entry.Ambulance.ID, &entry.Ambulance.AccountID, &entry.Ambulance.Name,
			&entry.Ambulance.Location.Lon, &entry.Ambulance.Location.Lat, &entry.Ambulance.LastUpdated,
			&entry.Label, &entry.Urgency, &entry.PhoneID, &leadSeconds,
			&entry.AlertDismissed, &entry.TrackedAt,
		)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		entry.LeadTime = time.Duration(leadSeconds) * time.Second
		tracked = append(tracked, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	return tracked, nil
}

// DismissAlert acknowledges the ETA alert for a tracked ambulance.
func (board *Board) DismissAlert(ctx context.Context, accountID, ambulanceID string) error {
	query := `UPDATE tracked_ambulances SET alert_dismissed = TRUE
		WHERE ambulance_id = $1 AND account_id = $2`

	tag, err := board.db.Exec(ctx, query, ambulanceID, accountID)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ambulance.ErrAmbulanceNotFound
	}

	return nil
}

// StopTracking takes an ambulance off the board. Stopping an untracked
// ambulance is a no-op.
func (board *Board) StopTracking(ctx context.Context, accountID, ambulanceID string) error {
	query := `DELETE FROM tracked_ambulances WHERE ambulance_id = $1 AND account_id = $2`

	if _, err := board.db.Exec(ctx, query, ambulanceID, accountID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
