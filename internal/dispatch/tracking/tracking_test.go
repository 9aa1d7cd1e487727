// Copyright (c) 2026 Ambutrack. All rights reserved.

package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsgrid/ambutrack/internal/accounts"
	"github.com/emsgrid/ambutrack/internal/dispatch/ambulance"
	"github.com/emsgrid/ambutrack/internal/dispatch/settings"
	"github.com/emsgrid/ambutrack/internal/dispatch/tracking"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

/*
TestBoard_Track checks the annotated upsert and the translation of broken
references into domain errors by constraint name.
*/
func TestBoard_Track(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	board := tracking.NewBoard(mock)

	phoneID := "p1"

	t.Run("ok", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO tracked_ambulances`).
			WithArgs("unit-7", "acct", "Cardiac run", "high", &phoneID, 300, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := board.Track(ctx, "acct", "unit-7", "Cardiac run", "high", &phoneID, 5*time.Minute)
		require.NoError(t, err)
	})

	t.Run("no_alert_phone", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO tracked_ambulances`).
			WithArgs("unit-8", "acct", "Transfer", "low", (*string)(nil), 0, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := board.Track(ctx, "acct", "unit-8", "Transfer", "low", nil, 0)
		require.NoError(t, err)
	})

	t.Run("unknown_ambulance", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO tracked_ambulances`).
			WithArgs("ghost", "acct", "Run", "low", (*string)(nil), 0, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "fk_tracked_ambulance",
			})

		err := board.Track(ctx, "acct", "ghost", "Run", "low", nil, 0)
		assert.ErrorIs(t, err, ambulance.ErrAmbulanceNotFound)
	})

	t.Run("unknown_phone", func(t *testing.T) {
		ghostPhone := "p9"

		mock.ExpectExec(`INSERT INTO tracked_ambulances`).
			WithArgs("unit-7", "acct", "Run", "low", &ghostPhone, 0, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "fk_tracked_phone",
			})

		err := board.Track(ctx, "acct", "unit-7", "Run", "low", &ghostPhone, 0)
		assert.ErrorIs(t, err, settings.ErrPhoneNotFound)
	})

	t.Run("unknown_account", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO tracked_ambulances`).
			WithArgs("unit-7", "ghost", "Run", "low", (*string)(nil), 0, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "fk_tracked_account",
			})

		err := board.Track(ctx, "ghost", "unit-7", "Run", "low", nil, 0)
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestBoard_ListTracked checks the joined row mapping and ordering.
*/
func TestBoard_ListTracked(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	board := tracking.NewBoard(mock)

	earlier := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	phoneID := "p1"

	columns := []string{
		"id", "account_id", "name", "lon", "lat", "last_updated",
		"label", "urgency", "phone_id", "lead_seconds", "alert_dismissed", "tracked_at",
	}

	mock.ExpectQuery(`SELECT .+ FROM tracked_ambulances t\s+JOIN ambulances a`).
		WithArgs("acct").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("unit-7", "acct", "Unit 7", -71.05, 42.35, earlier,
				"Cardiac run", "high", &phoneID, 300, true, earlier).
			AddRow("unit-8", "acct", "Unit 8", -71.00, 42.30, later,
				"Transfer", "low", (*string)(nil), 0, false, later))

	tracked, err := board.ListTracked(ctx, "acct")
	require.NoError(t, err)
	require.Len(t, tracked, 2)

	first := tracked[0]
	assert.Equal(t, "unit-7", first.Ambulance.ID)
	assert.Equal(t, "Unit 7", first.Ambulance.Name)
	assert.Equal(t, "Cardiac run", first.Label)
	assert.Equal(t, "high", first.Urgency)
	require.NotNil(t, first.PhoneID)
	assert.Equal(t, "p1", *first.PhoneID)
	assert.Equal(t, 5*time.Minute, first.LeadTime)
	assert.True(t, first.AlertDismissed)

	second := tracked[1]
	assert.Equal(t, "unit-8", second.Ambulance.ID)
	assert.Nil(t, second.PhoneID)
	assert.False(t, second.AlertDismissed)

	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestBoard_DismissAndStop checks dismissal of a missing entry and idempotent
stop.
*/
func TestBoard_DismissAndStop(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	board := tracking.NewBoard(mock)

	t.Run("dismiss_ok", func(t *testing.T) {
		mock.ExpectExec(`UPDATE tracked_ambulances SET alert_dismissed`).
			WithArgs("unit-7", "acct").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, board.DismissAlert(ctx, "acct", "unit-7"))
	})

	t.Run("dismiss_untracked", func(t *testing.T) {
		mock.ExpectExec(`UPDATE tracked_ambulances SET alert_dismissed`).
			WithArgs("ghost", "acct").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := board.DismissAlert(ctx, "acct", "ghost")
		assert.ErrorIs(t, err, ambulance.ErrAmbulanceNotFound)
	})

	t.Run("stop_untracked_is_noop", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM tracked_ambulances`).
			WithArgs("ghost", "acct").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, board.StopTracking(ctx, "acct", "ghost"))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
