// Copyright (c) 2026 Ambutrack. All rights reserved.

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// # Secure Random Generation

// SessionTokenLen is the length of a raw session token in bytes (256 bits).
const SessionTokenLen = 32

// TempPasswordAlphabet is the fixed 76-character set temporary passwords are
// drawn from: upper/lower letters, digits, and a small symbol set.
const TempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()-_=+"

// Codec generates the random material backing account credentials: salts,
// session tokens, and one-time temporary passwords.
//
// # Entropy Injection
//
// The entropy source is an explicit dependency rather than an ambient global
// so tests can substitute a deterministic reader. Production code uses
// [NewCodec], which reads from crypto/rand.
type Codec struct {
	entropy io.Reader
}

// NewCodec creates a Codec backed by the operating system's CSPRNG.
func NewCodec() *Codec {
	return &Codec{entropy: rand.Reader}
}

// NewCodecWithEntropy creates a Codec reading random material from the given
// source. Intended for tests; the source must never be predictable in
// production.
func NewCodecWithEntropy(entropy io.Reader) *Codec {
	return &Codec{entropy: entropy}
}

// Salt returns a fresh [SaltLen]-byte credential salt.
func (c *Codec) Salt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(c.entropy, salt); err != nil {
		return nil, fmt.Errorf("sec: failed to generate salt: %w", err)
	}
	return salt, nil
}

// SessionToken returns a fresh 256-bit random session token, hex-encoded.
// Tokens are opaque bearer values; unguessability is their only property.
func (c *Codec) SessionToken() (string, error) {
	token := make([]byte, SessionTokenLen)
	if _, err := io.ReadFull(c.entropy, token); err != nil {
		return "", fmt.Errorf("sec: failed to generate session token: %w", err)
	}
	return hex.EncodeToString(token), nil
}

// TempPassword returns a random password of the given length drawn from
// [TempPasswordAlphabet].
//
// Each character is an independent uniform sample: a fresh entropy byte is
// consumed per draw and rejection sampling removes modulo bias.
func (c *Codec) TempPassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: invalid temporary password length %d", length)
	}

	// Largest multiple of the alphabet size that fits in a byte; values at or
	// above it are rejected to keep every character equally likely.
	const rejectAbove = byte(256 - 256%len(TempPasswordAlphabet)) // 228

	password := make([]byte, 0, length)
	var b [1]byte
	for len(password) < length {
		if _, err := io.ReadFull(c.entropy, b[:]); err != nil {
			return "", fmt.Errorf("sec: failed to generate temporary password: %w", err)
		}
		if b[0] >= rejectAbove {
			continue
		}
		password = append(password, TempPasswordAlphabet[int(b[0])%len(TempPasswordAlphabet)])
	}

	return string(password), nil
}
