// Copyright (c) 2026 Ambutrack. All rights reserved.

package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emsgrid/ambutrack/internal/accounts"
	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/internal/platform/postgres"
	"github.com/emsgrid/ambutrack/pkg/geo"
	"github.com/emsgrid/ambutrack/pkg/uuidv7"
)

// PostgresManager implements [Manager] on PostgreSQL.
//
// Settings columns live on the accounts row itself; phone numbers get their
// own table with a cascading foreign key.
type PostgresManager struct {
	db postgres.Querier
}

// NewPostgresManager creates a [PostgresManager] backed by db.
func NewPostgresManager(db postgres.Querier) *PostgresManager {
	return &PostgresManager{db: db}
}

func (manager *PostgresManager) Get(ctx context.Context, accountID string) (*Settings, error) {
	query := `SELECT hospital_lon, hospital_lat, eta_alert_seconds FROM accounts WHERE id = $1`

	var (
		lon, lat     *float64
		alertSeconds int
	)

	err := manager.db.QueryRow(ctx, query, accountID).Scan(&lon, &lat, &alertSeconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accounts.ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}

	result := &Settings{ETAAlert: time.Duration(alertSeconds) * time.Second}
	if lon != nil && lat != nil {
		result.HospitalLocation = &geo.Point{Lon: *lon, Lat: *lat}
	}

	return result, nil
}

func (manager *PostgresManager) SetHospitalLocation(ctx context.Context, accountID string, location geo.Point) error {
	query := `UPDATE accounts SET hospital_lon = $2, hospital_lat = $3 WHERE id = $1`

	tag, err := manager.db.Exec(ctx, query, accountID, location.Lon, location.Lat)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return accounts.ErrUserNotFound
	}

	return nil
}

func (manager *PostgresManager) SetETAAlert(ctx context.Context, accountID string, threshold time.Duration) error {
	if threshold <= 0 || threshold > MaxETAAlert {
		return ErrETAAlertOutOfRange
	}

	query := `UPDATE accounts SET eta_alert_seconds = $2 WHERE id = $1`

	tag, err := manager.db.Exec(ctx, query, accountID, int(threshold.Seconds()))
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return accounts.ErrUserNotFound
	}

	return nil
}

func (manager *PostgresManager) AddPhone(ctx context.Context, accountID, number, label string) (*PhoneNumber, error) {
	if label == "" {
		label = labelForNumber(number)
	}

	phone := &PhoneNumber{
		ID:     uuidv7.New(),
		Number: number,
		Label:  label,
	}

	query := `INSERT INTO phone_numbers (id, account_id, number, label) VALUES ($1, $2, $3, $4)`

	_, err := manager.db.Exec(ctx, query, phone.ID, accountID, phone.Number, phone.Label)
	if err != nil {
		// The foreign key doubles as the existence check for the account.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, accounts.ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}

	return phone, nil
}

func (manager *PostgresManager) ListPhones(ctx context.Context, accountID string) ([]*PhoneNumber, error) {
	query := `SELECT id, number, label FROM phone_numbers WHERE account_id = $1 ORDER BY id ASC`

	rows, err := manager.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	phones := make([]*PhoneNumber, 0)

	for rows.Next() {
		var phone PhoneNumber
		if err := rows.Scan(&phone.ID, &phone.Number, &phone.Label); err != nil {
			return nil, apperr.Internal(err)
		}
		phones = append(phones, &phone)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	return phones, nil
}

func (manager *PostgresManager) DeletePhone(ctx context.Context, accountID, phoneID string) error {
	query := `DELETE FROM phone_numbers WHERE id = $1 AND account_id = $2`

	tag, err := manager.db.Exec(ctx, query, phoneID, accountID)
	if err != nil {
		return apperr.Internal(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrPhoneNotFound
	}

	return nil
}
