package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const vipCategoryName = "💎 VIP Lounge"

// vipRoles is the managed role set, in hierarchy order (highest first).
var vipRoles = []struct {
	Name  string
	Color int
}{
	{"🔥SUPER VIP", 0x992d22},
	{"💎VIP DIAMOND", 0x3498db},
	{"💜VIP GALACTIC", 0x9b59b6},
	{"🐸VIP FROG", 0x2ecc71},
	{"🪙Vip", 0xf1c40f},
}

func (b *Bot) cmdSetupVIPs(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	withChannels := false
	if o, ok := optionMap(i)["channels"]; ok {
		withChannels = o.BoolValue()
	}
	deferEphemeral(s, i)

	existing, err := s.GuildRoles(i.GuildID)
	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("role listing failed")
		followUp(s, i, "❌ Could not read the server's roles.")
		return
	}
	byName := make(map[string]*discordgo.Role, len(existing))
	for _, r := range existing {
		byName[r.Name] = r
	}

	mentionable := true
	var created, updated []string
	vipIDs := make([]string, 0, len(vipRoles))
	for _, def := range vipRoles {
		color := def.Color
		params := &discordgo.RoleParams{Name: def.Name, Color: &color, Mentionable: &mentionable}
		if r, ok := byName[def.Name]; ok {
			if _, err := s.GuildRoleEdit(i.GuildID, r.ID, params); err != nil {
				log.Warn().Err(err).Str("role", def.Name).Msg("role edit failed")
				continue
			}
			updated = append(updated, def.Name)
			vipIDs = append(vipIDs, r.ID)
		} else {
			r, err := s.GuildRoleCreate(i.GuildID, params)
			if err != nil {
				log.Warn().Err(err).Str("role", def.Name).Msg("role create failed")
				continue
			}
			created = append(created, def.Name)
			vipIDs = append(vipIDs, r.ID)
		}
	}

	var channels []string
	if withChannels {
		channels, err = b.provisionVIPChannels(s, i.GuildID, vipIDs)
		if err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("vip channel provisioning failed")
		}
	}

	var sb strings.Builder
	sb.WriteString("✅ **VIP setup done.**\n")
	if len(created) > 0 {
		sb.WriteString("🆕 Created: " + strings.Join(created, ", ") + "\n")
	}
	if len(updated) > 0 {
		sb.WriteString("🔧 Updated: " + strings.Join(updated, ", ") + "\n")
	}
	if len(channels) > 0 {
		sb.WriteString("📡 Channels: " + strings.Join(channels, ", ") + "\n")
	}
	followUp(s, i, sb.String())
	b.record(i.GuildID, "VIP setup", interactionUserID(i), "",
		fmt.Sprintf("Created: %d\nUpdated: %d\nChannels: %d", len(created), len(updated), len(channels)))
}

// provisionVIPChannels creates the VIP category with one text and one voice
// channel, hidden from everyone and opened to the given roles. Existing
// channels with the same name are reused.
func (b *Bot) provisionVIPChannels(s *discordgo.Session, guildID string, vipIDs []string) ([]string, error) {
	all, err := s.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}

	var categoryID string
	haveText, haveVoice := false, false
	for _, c := range all {
		switch {
		case c.Type == discordgo.ChannelTypeGuildCategory && c.Name == vipCategoryName:
			categoryID = c.ID
		case c.Type == discordgo.ChannelTypeGuildText && c.Name == "💎vip-chat":
			haveText = true
		case c.Type == discordgo.ChannelTypeGuildVoice && c.Name == "🎵vip-music":
			haveVoice = true
		}
	}
	if categoryID == "" {
		cat, err := s.GuildChannelCreate(guildID, vipCategoryName, discordgo.ChannelTypeGuildCategory)
		if err != nil {
			return nil, err
		}
		categoryID = cat.ID
	}

	overwrites := func(allow int64) []*discordgo.PermissionOverwrite {
		ow := []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		}
		for _, id := range vipIDs {
			ow = append(ow, &discordgo.PermissionOverwrite{
				ID: id, Type: discordgo.PermissionOverwriteTypeRole, Allow: allow,
			})
		}
		return ow
	}

	var made []string
	if !haveText {
		ch, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:                 "💎vip-chat",
			Type:                 discordgo.ChannelTypeGuildText,
			ParentID:             categoryID,
			PermissionOverwrites: overwrites(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages),
		})
		if err != nil {
			return made, err
		}
		made = append(made, ch.Name)
	}
	if !haveVoice {
		ch, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:                 "🎵vip-music",
			Type:                 discordgo.ChannelTypeGuildVoice,
			ParentID:             categoryID,
			PermissionOverwrites: overwrites(discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect),
		})
		if err != nil {
			return made, err
		}
		made = append(made, ch.Name)
	}
	return made, nil
}

// moderationPermissionBits are the permissions counted when ranking roles.
var moderationPermissionBits = []int64{
	discordgo.PermissionKickMembers,
	discordgo.PermissionBanMembers,
	discordgo.PermissionManageChannels,
	discordgo.PermissionManageServer,
	discordgo.PermissionManageMessages,
	discordgo.PermissionManageRoles,
	discordgo.PermissionManageWebhooks,
	discordgo.PermissionManageNicknames,
	discordgo.PermissionModerateMembers,
	discordgo.PermissionMentionEveryone,
	discordgo.PermissionViewAuditLogs,
	discordgo.PermissionManageEvents,
	discordgo.PermissionVoiceMuteMembers,
	discordgo.PermissionVoiceDeafenMembers,
	discordgo.PermissionVoiceMoveMembers,
}

func moderationWeight(perms int64) int {
	n := 0
	for _, bit := range moderationPermissionBits {
		if perms&bit != 0 {
			n++
		}
	}
	return n
}

// cmdOrganizeRoles reorders every non-admin role below the bot's own top
// role so heavier moderation roles sit higher. Admin roles and anything at
// or above the bot keep their positions.
func (b *Bot) cmdOrganizeRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	deferEphemeral(s, i)

	roles, err := s.GuildRoles(i.GuildID)
	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("role listing failed")
		followUp(s, i, "❌ Could not read the server's roles.")
		return
	}
	me, err := s.GuildMember(i.GuildID, s.State.User.ID)
	if err != nil {
		log.Error().Err(err).Msg("self member lookup failed")
		followUp(s, i, "❌ Could not resolve my own roles.")
		return
	}
	byID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	botTop := 0
	for _, id := range me.Roles {
		if r, ok := byID[id]; ok && r.Position > botTop {
			botTop = r.Position
		}
	}

	var movable []*discordgo.Role
	admins := 0
	for _, r := range roles {
		if r.ID == i.GuildID || r.Position >= botTop || r.Managed {
			continue
		}
		if r.Permissions&discordgo.PermissionAdministrator != 0 {
			admins++
			continue
		}
		movable = append(movable, r)
	}
	// Heaviest roles end up highest; ties keep their current order.
	sort.SliceStable(movable, func(a, b int) bool {
		return moderationWeight(movable[a].Permissions) < moderationWeight(movable[b].Permissions)
	})

	moved := 0
	reordered := make([]*discordgo.Role, 0, len(movable))
	for pos, r := range movable {
		if r.Position != pos+1 {
			moved++
		}
		r.Position = pos + 1
		reordered = append(reordered, r)
	}
	if moved > 0 {
		if _, err := s.GuildRoleReorder(i.GuildID, reordered); err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("role reorder failed")
			followUp(s, i, "❌ Could not reorder the roles.")
			return
		}
	}

	followUp(s, i, fmt.Sprintf(
		"✅ **Roles organized.**\n📊 Moved: **%d**\n🔒 Admin roles untouched: **%d**\n🤖 Roles above me untouched.",
		moved, admins))
	b.record(i.GuildID, "Roles organized", interactionUserID(i), "",
		fmt.Sprintf("Moved: %d", moved))
}
