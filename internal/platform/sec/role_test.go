// Copyright (c) 2026 Ambutrack. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emsgrid/ambutrack/internal/platform/sec"
)

/*
TestRole_CanOwn exercises every role pair: only (site_admin, admin) and
(admin, user) are permitted.
*/
func TestRole_CanOwn(t *testing.T) {
	roles := []sec.Role{sec.RoleSiteAdmin, sec.RoleAdmin, sec.RoleUser}

	allowed := map[[2]sec.Role]bool{
		{sec.RoleSiteAdmin, sec.RoleAdmin}: true,
		{sec.RoleAdmin, sec.RoleUser}:      true,
	}

	for _, owner := range roles {
		for _, subject := range roles {
			want := allowed[[2]sec.Role{owner, subject}]
			assert.Equal(t, want, owner.CanOwn(subject), "CanOwn(%s, %s)", owner, subject)
		}
	}
}

/*
TestRole_CanOwn_UnknownRole ensures the predicate is total: unknown roles own
nothing and cannot be owned.
*/
func TestRole_CanOwn_UnknownRole(t *testing.T) {
	unknown := sec.Role("dispatcher")

	assert.False(t, unknown.CanOwn(sec.RoleUser))
	assert.False(t, sec.RoleSiteAdmin.CanOwn(unknown))
}

/*
TestParseRole covers round-tripping of stored role strings.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		value string
		want  sec.Role
		ok    bool
	}{
		{"site_admin", sec.RoleSiteAdmin, true},
		{"admin", sec.RoleAdmin, true},
		{"user", sec.RoleUser, true},
		{"SiteAdmin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := sec.ParseRole(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
