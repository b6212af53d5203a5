package bot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var mentionUserRe = regexp.MustCompile(`^<@!?(\d+)>$`)
var digitsRe = regexp.MustCompile(`^\d+$`)

func (b *Bot) cmdKick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionKickMembers) {
		respondDenied(s, i, "You need **Kick Members**.")
		return
	}
	opts := optionMap(i)
	target := opts["member"].UserValue(nil)
	reason := "—"
	if o, ok := opts["reason"]; ok {
		reason = o.StringValue()
	}
	deferEphemeral(s, i)
	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		log.Error().Err(err).Str("target", target.ID).Msg("kick failed")
		followUp(s, i, "❌ Kick failed.")
		return
	}
	followUp(s, i, fmt.Sprintf("👢 <@%s> was kicked.", target.ID))
	b.record(i.GuildID, "Kick", interactionUserID(i), target.ID, "Reason: "+reason)
}

func (b *Bot) cmdBan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionBanMembers) {
		respondDenied(s, i, "You need **Ban Members**.")
		return
	}
	opts := optionMap(i)
	raw := opts["user"].StringValue()
	reason := "—"
	if o, ok := opts["reason"]; ok {
		reason = o.StringValue()
	}
	deleteHours := 0
	if o, ok := opts["delete_hours"]; ok {
		deleteHours = int(o.IntValue())
		if deleteHours < 0 {
			deleteHours = 0
		}
		if deleteHours > 24 {
			deleteHours = 24
		}
	}

	uid := raw
	if m := mentionUserRe.FindStringSubmatch(raw); m != nil {
		uid = m[1]
	}
	if !digitsRe.MatchString(uid) {
		respondErr(s, i, "Provide a **mention** or a numeric **ID**.")
		return
	}

	deferEphemeral(s, i)
	// The ban endpoint takes days; round any partial day up so the
	// requested hours are always covered.
	days := (deleteHours + 23) / 24
	if err := s.GuildBanCreateWithReason(i.GuildID, uid, reason, days); err != nil {
		log.Error().Err(err).Str("target", uid).Msg("ban failed")
		followUp(s, i, "❌ Ban failed.")
		return
	}
	followUp(s, i, fmt.Sprintf("🔨 User **%s** banned.", uid))
	b.record(i.GuildID, "Ban", interactionUserID(i), uid,
		fmt.Sprintf("Reason: %s\nDelete: %dh", reason, deleteHours))
}

func (b *Bot) cmdUnban(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionBanMembers) {
		respondDenied(s, i, "You need **Ban Members**.")
		return
	}
	uid := optionMap(i)["user_id"].StringValue()
	if !digitsRe.MatchString(uid) {
		respondErr(s, i, "Provide a numeric user ID.")
		return
	}
	deferEphemeral(s, i)
	if err := s.GuildBanDelete(i.GuildID, uid); err != nil {
		log.Error().Err(err).Str("target", uid).Msg("unban failed")
		followUp(s, i, "❌ Unban failed.")
		return
	}
	followUp(s, i, fmt.Sprintf("✅ User **%s** unbanned.", uid))
	b.record(i.GuildID, "Unban", interactionUserID(i), uid, "")
}

func (b *Bot) cmdTimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionModerateMembers) {
		respondDenied(s, i, "You need **Moderate Members**.")
		return
	}
	opts := optionMap(i)
	target := opts["member"].UserValue(nil)
	minutes := int(opts["minutes"].IntValue())
	if minutes < 1 {
		minutes = 1
	}
	if minutes > 40320 { // 28 days
		minutes = 40320
	}
	reason := "—"
	if o, ok := opts["reason"]; ok {
		reason = o.StringValue()
	}
	deferEphemeral(s, i)
	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		log.Error().Err(err).Str("target", target.ID).Msg("timeout failed")
		followUp(s, i, "❌ Timeout failed.")
		return
	}
	followUp(s, i, fmt.Sprintf("⏳ <@%s> timed out for **%d min**.", target.ID, minutes))
	b.record(i.GuildID, "Timeout", interactionUserID(i), target.ID,
		fmt.Sprintf("Minutes: %d\nReason: %s", minutes, reason))
}

func (b *Bot) cmdUntimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionModerateMembers) {
		respondDenied(s, i, "You need **Moderate Members**.")
		return
	}
	target := optionMap(i)["member"].UserValue(nil)
	deferEphemeral(s, i)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, nil); err != nil {
		log.Error().Err(err).Str("target", target.ID).Msg("untimeout failed")
		followUp(s, i, "❌ Could not remove the timeout.")
		return
	}
	followUp(s, i, fmt.Sprintf("✅ Timeout removed from <@%s>.", target.ID))
	b.record(i.GuildID, "Timeout removed", interactionUserID(i), target.ID, "")
}

func (b *Bot) cmdClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageMessages) {
		respondDenied(s, i, "You need **Manage Messages**.")
		return
	}
	count := int(optionMap(i)["count"].IntValue())
	if count < 1 {
		count = 1
	}
	if count > 200 {
		count = 200
	}
	deferEphemeral(s, i)

	deleted := 0
	for count > 0 {
		batch := count
		if batch > 100 { // bulk-delete endpoint limit
			batch = 100
		}
		msgs, err := s.ChannelMessages(i.ChannelID, batch, "", "", "")
		if err != nil || len(msgs) == 0 {
			break
		}
		ids := make([]string, len(msgs))
		for n, m := range msgs {
			ids[n] = m.ID
		}
		if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
			log.Error().Err(err).Msg("bulk delete failed")
			break
		}
		deleted += len(ids)
		count -= len(ids)
	}

	followUp(s, i, fmt.Sprintf("🧹 Deleted **%d** messages.", deleted))
	b.record(i.GuildID, "Clear", interactionUserID(i), "",
		fmt.Sprintf("Channel: <#%s>\nDeleted: %d", i.ChannelID, deleted))
}

// cmdClearUser deletes only one member's recent messages. The search window
// is the count option; fewer may be deleted when others posted in between.
func (b *Bot) cmdClearUser(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageMessages) {
		respondDenied(s, i, "You need **Manage Messages**.")
		return
	}
	opts := optionMap(i)
	target := opts["member"].UserValue(nil)
	window := int(opts["count"].IntValue())
	if window < 1 {
		window = 1
	}
	if window > 200 {
		window = 200
	}
	deferEphemeral(s, i)

	deleted := 0
	beforeID := ""
	for window > 0 {
		batch := window
		if batch > 100 { // bulk-delete endpoint limit
			batch = 100
		}
		msgs, err := s.ChannelMessages(i.ChannelID, batch, beforeID, "", "")
		if err != nil || len(msgs) == 0 {
			break
		}
		beforeID = msgs[len(msgs)-1].ID
		var ids []string
		for _, m := range msgs {
			if m.Author != nil && m.Author.ID == target.ID {
				ids = append(ids, m.ID)
			}
		}
		if len(ids) > 0 {
			if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
				log.Error().Err(err).Msg("bulk delete failed")
				break
			}
			deleted += len(ids)
		}
		window -= len(msgs)
	}

	followUp(s, i, fmt.Sprintf("🧹 Deleted **%d** message(s) from <@%s>.", deleted, target.ID))
	b.record(i.GuildID, "Clear user", interactionUserID(i), target.ID,
		fmt.Sprintf("Channel: <#%s>\nDeleted: %d", i.ChannelID, deleted))
}

func (b *Bot) cmdLockChannel(s *discordgo.Session, i *discordgo.InteractionCreate, lock bool) {
	if !hasPermission(i, discordgo.PermissionManageChannels) {
		respondDenied(s, i, "You need **Manage Channels**.")
		return
	}
	deferEphemeral(s, i)

	var err error
	if lock {
		err = s.ChannelPermissionSet(i.ChannelID, i.GuildID, discordgo.PermissionOverwriteTypeRole,
			discordgo.PermissionViewChannel, discordgo.PermissionSendMessages)
	} else {
		err = s.ChannelPermissionSet(i.ChannelID, i.GuildID, discordgo.PermissionOverwriteTypeRole,
			discordgo.PermissionViewChannel|discordgo.PermissionSendMessages, 0)
	}
	if err != nil {
		log.Error().Err(err).Str("channel", i.ChannelID).Msg("channel lock update failed")
		followUp(s, i, "❌ Could not update the channel.")
		return
	}
	if lock {
		followUp(s, i, "🔒 Channel **locked** (staff only).")
		b.record(i.GuildID, "Channel locked", interactionUserID(i), "", "Channel: <#"+i.ChannelID+">")
	} else {
		followUp(s, i, "🔓 Channel **unlocked**.")
		b.record(i.GuildID, "Channel unlocked", interactionUserID(i), "", "Channel: <#"+i.ChannelID+">")
	}
}

func (b *Bot) cmdSlowmode(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageChannels) {
		respondDenied(s, i, "You need **Manage Channels**.")
		return
	}
	secs := int(optionMap(i)["seconds"].IntValue())
	if secs < 0 {
		secs = 0
	}
	if secs > 21600 { // 6h, platform maximum
		secs = 21600
	}
	deferEphemeral(s, i)
	if _, err := s.ChannelEditComplex(i.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &secs}); err != nil {
		log.Error().Err(err).Str("channel", i.ChannelID).Msg("slowmode update failed")
		followUp(s, i, "❌ Could not set slowmode.")
		return
	}
	followUp(s, i, fmt.Sprintf("🐢 Slowmode set to **%ds**.", secs))
	b.record(i.GuildID, "Slowmode", interactionUserID(i), "",
		fmt.Sprintf("Channel: <#%s>\nSeconds: %d", i.ChannelID, secs))
}

func (b *Bot) cmdAnnounce(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageMessages) {
		respondDenied(s, i, "You need **Manage Messages**.")
		return
	}
	opts := optionMap(i)
	title := opts["title"].StringValue()
	message := opts["message"].StringValue()
	channelID := i.ChannelID
	if o, ok := opts["channel"]; ok {
		channelID = o.ChannelValue(nil).ID
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📢 " + title,
		Description: message,
		Color:       0xf1c40f,
		Footer:      &discordgo.MessageEmbedFooter{Text: "By " + interactionUserID(i)},
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Error().Err(err).Msg("announce post failed")
		respondErr(s, i, "Could not post the announcement.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Announcement posted in <#%s>.", channelID))
	b.record(i.GuildID, "Announce", interactionUserID(i), "",
		fmt.Sprintf("Channel: <#%s>\nTitle: %s", channelID, title))
}

// cmdSay relays a message as the bot, into the channel or as DMs when user
// ids are given. Repetition is capped so the command cannot flood.
func (b *Bot) cmdSay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	opts := optionMap(i)
	message := opts["message"].StringValue()
	times := 1
	if o, ok := opts["times"]; ok {
		times = int(o.IntValue())
		if times < 1 {
			times = 1
		}
		if times > 5 {
			times = 5
		}
	}

	var targets []string
	if o, ok := opts["user_ids"]; ok {
		for _, raw := range strings.Split(o.StringValue(), ",") {
			id := strings.TrimSpace(raw)
			if digitsRe.MatchString(id) {
				targets = append(targets, id)
			}
		}
		if len(targets) == 0 {
			respondErr(s, i, "No valid user IDs found. Separate them with commas.")
			return
		}
	}
	deferEphemeral(s, i)

	if len(targets) == 0 {
		for n := 0; n < times; n++ {
			if _, err := s.ChannelMessageSend(i.ChannelID, message); err != nil {
				log.Warn().Err(err).Msg("say delivery failed")
				break
			}
		}
		followUp(s, i, "✅ Sent.")
		b.record(i.GuildID, "Say", interactionUserID(i), "",
			fmt.Sprintf("Channel: <#%s>\nTimes: %d", i.ChannelID, times))
		return
	}

	sent, failed := 0, 0
	for _, uid := range targets {
		ch, err := s.UserChannelCreate(uid)
		if err != nil {
			failed++
			continue
		}
		ok := true
		for n := 0; n < times; n++ {
			if _, err := s.ChannelMessageSend(ch.ID, message); err != nil {
				log.Warn().Err(err).Str("target", uid).Msg("say DM failed")
				ok = false
				break
			}
		}
		if ok {
			sent++
		} else {
			failed++
		}
	}
	followUp(s, i, fmt.Sprintf("✉️ DMs sent to **%d** user(s), **%d** failed.", sent, failed))
	b.record(i.GuildID, "Say (DM)", interactionUserID(i), strings.Join(targets, ", "),
		fmt.Sprintf("Times: %d\nSent: %d\nFailed: %d", times, sent, failed))
}
