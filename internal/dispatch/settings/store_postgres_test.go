// Copyright (c) 2026 Ambutrack. All rights reserved.

package settings_test

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
	"github.com/emsgrid/ambutrack/internal/dispatch/settings"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

/*
TestPostgresManager_Get covers the configured, unconfigured, and missing
account cases.
*/
func TestPostgresManager_Get(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	manager := settings.NewPostgresManager(mock)

	columns := []string{"hospital_lon", "hospital_lat", "eta_alert_seconds"}

	t.Run("configured", func(t *testing.T) {
		lon, lat := -71.06, 42.36

		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
			WithArgs("acct").
			WillReturnRows(pgxmock.NewRows(columns).AddRow(&lon, &lat, 1200))

		got, err := manager.Get(ctx, "acct")
		require.NoError(t, err)
		require.NotNil(t, got.HospitalLocation)
		assert.Equal(t, geo.Point{Lon: -71.06, Lat: 42.36}, *got.HospitalLocation)
		assert.Equal(t, 1200*time.Second, got.ETAAlert)
	})

	t.Run("defaults", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
			WithArgs("fresh").
			WillReturnRows(pgxmock.NewRows(columns).AddRow((*float64)(nil), (*float64)(nil), 900))

		got, err := manager.Get(ctx, "fresh")
		require.NoError(t, err)
		assert.Nil(t, got.HospitalLocation)
		assert.Equal(t, settings.DefaultETAAlert, got.ETAAlert)
	})

	t.Run("missing_account", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows(columns))

		_, err := manager.Get(ctx, "ghost")
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresManager_SetETAAlert checks the threshold bounds and the write.
*/
func TestPostgresManager_SetETAAlert(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	manager := settings.NewPostgresManager(mock)

	t.Run("ok", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET eta_alert_seconds`).
			WithArgs("acct", 1800).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, manager.SetETAAlert(ctx, "acct", 30*time.Minute))
	})

	t.Run("at_maximum", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET eta_alert_seconds`).
			WithArgs("acct", 21600).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, manager.SetETAAlert(ctx, "acct", settings.MaxETAAlert))
	})

	t.Run("beyond_maximum", func(t *testing.T) {
		err := manager.SetETAAlert(ctx, "acct", settings.MaxETAAlert+time.Second)
		assert.ErrorIs(t, err, settings.ErrETAAlertOutOfRange)
	})

	t.Run("non_positive", func(t *testing.T) {
		err := manager.SetETAAlert(ctx, "acct", 0)
		assert.ErrorIs(t, err, settings.ErrETAAlertOutOfRange)

		err = manager.SetETAAlert(ctx, "acct", -time.Minute)
		assert.ErrorIs(t, err, settings.ErrETAAlertOutOfRange)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresManager_SetHospitalLocation checks the write and the missing
account case.
*/
func TestPostgresManager_SetHospitalLocation(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	manager := settings.NewPostgresManager(mock)

	t.Run("ok", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET hospital_lon`).
			WithArgs("acct", -71.06, 42.36).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, manager.SetHospitalLocation(ctx, "acct", geo.Point{Lon: -71.06, Lat: 42.36}))
	})

	t.Run("missing_account", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET hospital_lon`).
			WithArgs("ghost", -71.06, 42.36).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := manager.SetHospitalLocation(ctx, "ghost", geo.Point{Lon: -71.06, Lat: 42.36})
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresManager_Phones covers label derivation, the foreign key standing
in for the account existence check, and owner-scoped deletion.
*/
func TestPostgresManager_Phones(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	manager := settings.NewPostgresManager(mock)

	t.Run("add_with_label", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO phone_numbers`).
			WithArgs(pgxmock.AnyArg(), "acct", "6175550123", "Night shift").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		phone, err := manager.AddPhone(ctx, "acct", "6175550123", "Night shift")
		require.NoError(t, err)
		assert.Equal(t, "Night shift", phone.Label)
		assert.NotEmpty(t, phone.ID)
	})

	t.Run("add_derives_label", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO phone_numbers`).
			WithArgs(pgxmock.AnyArg(), "acct", "617-555-0123", "(617) 555-0123").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		phone, err := manager.AddPhone(ctx, "acct", "617-555-0123", "")
		require.NoError(t, err)
		assert.Equal(t, "(617) 555-0123", phone.Label)
	})

	t.Run("add_odd_number_label_passthrough", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO phone_numbers`).
			WithArgs(pgxmock.AnyArg(), "acct", "911", "911").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		phone, err := manager.AddPhone(ctx, "acct", "911", "")
		require.NoError(t, err)
		assert.Equal(t, "911", phone.Label)
	})

	t.Run("add_for_missing_account", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO phone_numbers`).
			WithArgs(pgxmock.AnyArg(), "ghost", "6175550123", "(617) 555-0123").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

		_, err := manager.AddPhone(ctx, "ghost", "6175550123", "")
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM phone_numbers`).
			WithArgs("acct").
			WillReturnRows(pgxmock.NewRows([]string{"id", "number", "label"}).
				AddRow("p1", "6175550123", "Night shift").
				AddRow("p2", "6175550124", "(617) 555-0124"))

		phones, err := manager.ListPhones(ctx, "acct")
		require.NoError(t, err)
		require.Len(t, phones, 2)
		assert.Equal(t, "p1", phones[0].ID)
	})

	t.Run("delete_missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM phone_numbers`).
			WithArgs("p9", "acct").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := manager.DeletePhone(ctx, "acct", "p9")
		assert.ErrorIs(t, err, settings.ErrPhoneNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
