// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package sec provides the cryptographic primitives for account credentials
// and session tokens.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, random generation,
// the role hierarchy) from the domain logic. It holds no account state; the
// accounts service composes it by construction.
package sec

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Hashing is deterministic for a given password and
// salt, which is what allows verification by recomputation.
const (
	// HashLen is the length of a password digest in bytes.
	HashLen = 32

	// SaltLen is the length of a credential salt in bytes.
	SaltLen = 16

	argonTime    = 2
	argonMemory  = 19 * 1024 // KiB
	argonThreads = 1
)

// HashPassword derives a [HashLen]-byte Argon2id digest of the password
// under the given salt. Same inputs always produce the same output.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, HashLen)
}

// VerifyPassword recomputes the digest of password under salt and compares it
// against wantHash in constant time.
func VerifyPassword(password, salt, wantHash []byte) bool {
	gotHash := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(gotHash, wantHash) == 1
}
