// Package capability resolves whether a member may perform a class of
// action. Authorization is keyed on configured role ids rather than on
// role display names, so renaming a role never changes who is staff.
package capability

import (
	"github.com/bwmarrin/discordgo"
)

// Capability is an authorization predicate independent of role naming.
type Capability string

const (
	// Staff may manage tickets and run giveaways.
	Staff Capability = "staff"
	// Music may use the playback relay.
	Music Capability = "music"
)

// Resolver answers capability checks for guild members.
type Resolver interface {
	Has(m *discordgo.Member, c Capability) bool
}

// RoleMap resolves capabilities from role-id sets. Members carrying the
// administrator permission hold every capability. An empty Music set means
// playback is open to everyone.
type RoleMap struct {
	roles map[Capability]map[string]struct{}
}

func NewRoleMap(staffRoleIDs, musicRoleIDs []string) *RoleMap {
	rm := &RoleMap{roles: map[Capability]map[string]struct{}{
		Staff: toSet(staffRoleIDs),
		Music: toSet(musicRoleIDs),
	}}
	return rm
}

func (rm *RoleMap) Has(m *discordgo.Member, c Capability) bool {
	if m == nil {
		return false
	}
	if m.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	ids := rm.roles[c]
	if c == Music && len(ids) == 0 {
		return true
	}
	for _, r := range m.Roles {
		if _, ok := ids[r]; ok {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}
