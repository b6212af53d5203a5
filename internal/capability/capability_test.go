package capability

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func member(perms int64, roles ...string) *discordgo.Member {
	return &discordgo.Member{Permissions: perms, Roles: roles}
}

func TestRoleMapStaff(t *testing.T) {
	rm := NewRoleMap([]string{"r-staff"}, []string{"r-music"})

	assert.True(t, rm.Has(member(0, "r-staff"), Staff))
	assert.False(t, rm.Has(member(0, "r-other"), Staff))
	assert.False(t, rm.Has(member(0), Staff))
	assert.False(t, rm.Has(nil, Staff))
}

func TestRoleMapAdminBypass(t *testing.T) {
	rm := NewRoleMap([]string{"r-staff"}, []string{"r-music"})
	admin := member(discordgo.PermissionAdministrator)

	assert.True(t, rm.Has(admin, Staff))
	assert.True(t, rm.Has(admin, Music))
}

func TestRoleMapRenameSafe(t *testing.T) {
	// Checks are keyed on role id, so only the id matters.
	rm := NewRoleMap([]string{"123"}, nil)
	assert.True(t, rm.Has(member(0, "123"), Staff))
	assert.False(t, rm.Has(member(0, "456"), Staff))
}

func TestRoleMapEmptyMusicSetIsOpen(t *testing.T) {
	rm := NewRoleMap([]string{"r-staff"}, nil)
	assert.True(t, rm.Has(member(0), Music))

	restricted := NewRoleMap([]string{"r-staff"}, []string{"r-music"})
	assert.False(t, restricted.Has(member(0), Music))
	assert.True(t, restricted.Has(member(0, "r-music"), Music))
}
