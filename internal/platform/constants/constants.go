// Copyright (c) 2026 Ambutrack. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts and cross-cutting keys that are shared between
different layers of the system.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "ambutrack"
	AppVersion = "0.1.0-dev"
)

// # Database Timing

const (
	// StatementTimeout is the per-connection Postgres statement ceiling,
	// applied when each physical connection is established.
	StatementTimeout = 30 * time.Second

	// StartupTimeout bounds the whole connect-and-migrate startup sequence.
	StartupTimeout = 30 * time.Second
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixSession = "accounts:session:"
)
