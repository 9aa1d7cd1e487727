// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package settings holds per-account dispatcher preferences: the hospital
// drop-off point, the ETA alert threshold, and notification phone numbers.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

const (
	// DefaultETAAlert is the alert threshold an account starts with.
	DefaultETAAlert = 900 * time.Second

	// MaxETAAlert caps the threshold; beyond this an alert is meaningless.
	MaxETAAlert = 6 * time.Hour
)

// Settings are one account's dispatcher preferences.
type Settings struct {
	// HospitalLocation is nil until the account configures one.
	HospitalLocation *geo.Point    `json:"hospital_location"`
	ETAAlert         time.Duration `json:"eta_alert"`
}

// PhoneNumber is a notification recipient.
type PhoneNumber struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Label  string `json:"label"`
}

var (
	// ErrPhoneNotFound reports a phone id absent from the account's list.
	ErrPhoneNotFound = apperr.New("PHONE_NOT_FOUND", "phone number not found")

	// ErrETAAlertOutOfRange reports a threshold that is not positive or is
	// above [MaxETAAlert].
	ErrETAAlertOutOfRange = apperr.New("ETA_ALERT_OUT_OF_RANGE", "eta alert threshold must be positive and at most six hours")
)

// labelForNumber derives a display label for an unlabeled phone number. Ten
// digit numbers render as (xxx) xxx-xxxx, anything else passes through.
func labelForNumber(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) != 10 {
		return number
	}

	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}
