package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/capability"
)

func (b *Bot) cmdAdminPanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can publish the admin panel.")
		return
	}
	channelID := i.ChannelID
	if o, ok := optionMap(i)["channel"]; ok {
		channelID = o.ChannelValue(nil).ID
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛠️ Admin panel",
		Description: "This panel is visible to everyone; **only staff** can use the buttons.\n\n" +
			"🔨 **Ban** • 👢 **Kick** • ⏳ **Timeout** • 🎗️ **Manage role** • 📅 **Create event** • 🎤 **Create stage**\n\n" +
			"Every action is recorded in the audit log.",
		Color: 0xe67e22,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "🔨 Ban", Style: discordgo.DangerButton, CustomID: adminBanID},
			discordgo.Button{Label: "👢 Kick", Style: discordgo.DangerButton, CustomID: adminKickID},
			discordgo.Button{Label: "⏳ Timeout", Style: discordgo.SecondaryButton, CustomID: adminTimeoutID},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "🎗️ Manage role", Style: discordgo.PrimaryButton, CustomID: adminRoleID},
			discordgo.Button{Label: "📅 Create event", Style: discordgo.SuccessButton, CustomID: adminEventID},
			discordgo.Button{Label: "🎤 Create stage", Style: discordgo.SuccessButton, CustomID: adminStageID},
		}},
	}
	if _, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	}); err != nil {
		log.Error().Err(err).Msg("admin panel post failed")
		respondErr(s, i, "Could not publish the panel.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Admin panel published in <#%s>.", channelID))
	b.record(i.GuildID, "Admin panel published", interactionUserID(i), "", "Channel: <#"+channelID+">")
}

// handleAdminButton opens the modal behind a panel button. The staff check
// repeats on every modal submit; the button gate only saves a round trip.
func (b *Bot) handleAdminButton(s *discordgo.Session, i *discordgo.InteractionCreate, modalID string) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}

	var title string
	var rows []discordgo.MessageComponent
	switch modalID {
	case adminBanModalID:
		title = "Ban a user"
		rows = []discordgo.MessageComponent{
			textInputRow("user_id", "User ID", discordgo.TextInputShort, true, 25),
			textInputRow("reason", "Reason (optional)", discordgo.TextInputParagraph, false, 300),
		}
	case adminKickModalID:
		title = "Kick a member"
		rows = []discordgo.MessageComponent{
			textInputRow("user_id", "User ID", discordgo.TextInputShort, true, 25),
			textInputRow("reason", "Reason (optional)", discordgo.TextInputParagraph, false, 300),
		}
	case adminTimeoutModalID:
		title = "Timeout a member"
		rows = []discordgo.MessageComponent{
			textInputRow("user_id", "User ID", discordgo.TextInputShort, true, 25),
			textInputRow("minutes", "Duration (minutes)", discordgo.TextInputShort, true, 5),
			textInputRow("reason", "Reason (optional)", discordgo.TextInputParagraph, false, 300),
		}
	case adminRoleModalID:
		title = "Manage a role (add/remove)"
		rows = []discordgo.MessageComponent{
			textInputRow("user_id", "User ID", discordgo.TextInputShort, true, 25),
			textInputRow("role_id", "Role ID", discordgo.TextInputShort, true, 25),
			textInputRow("action", "Action (add/remove)", discordgo.TextInputShort, true, 6),
			textInputRow("reason", "Reason (optional)", discordgo.TextInputParagraph, false, 300),
		}
	case adminEventModalID:
		title = "Create an event (stage/voice)"
		rows = []discordgo.MessageComponent{
			textInputRow("name", "Event name", discordgo.TextInputShort, true, 100),
			textInputRow("channel_id", "Voice/stage channel ID", discordgo.TextInputShort, true, 25),
			textInputRow("description", "Description (optional)", discordgo.TextInputParagraph, false, 500),
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modalID,
			Title:      title,
			Components: rows,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("modal", modalID).Msg("admin modal failed")
	}
}

func (b *Bot) handleAdminBanSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	uid := modalValue(i, "user_id")
	if !digitsRe.MatchString(uid) {
		respondErr(s, i, "Provide a numeric user ID.")
		return
	}
	reason := modalValue(i, "reason")
	if reason == "" {
		reason = "Banned via admin panel"
	}
	deferEphemeral(s, i)
	if err := s.GuildBanCreateWithReason(i.GuildID, uid, reason, 0); err != nil {
		log.Error().Err(err).Str("target", uid).Msg("panel ban failed")
		followUp(s, i, "❌ Ban failed. Check the ID and my permissions.")
		return
	}
	followUp(s, i, fmt.Sprintf("🔨 User **%s** banned.", uid))
	b.record(i.GuildID, "Ban (panel)", interactionUserID(i), uid, "Reason: "+reason)
}

func (b *Bot) handleAdminKickSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	uid := modalValue(i, "user_id")
	if !digitsRe.MatchString(uid) {
		respondErr(s, i, "Provide a numeric user ID.")
		return
	}
	reason := modalValue(i, "reason")
	if reason == "" {
		reason = "Kicked via admin panel"
	}
	deferEphemeral(s, i)
	if !memberPresent(s, i.GuildID, uid) {
		followUp(s, i, "❌ That user is not in this server.")
		return
	}
	if err := s.GuildMemberDeleteWithReason(i.GuildID, uid, reason); err != nil {
		log.Error().Err(err).Str("target", uid).Msg("panel kick failed")
		followUp(s, i, "❌ Kick failed.")
		return
	}
	followUp(s, i, fmt.Sprintf("👢 <@%s> was kicked.", uid))
	b.record(i.GuildID, "Kick (panel)", interactionUserID(i), uid, "Reason: "+reason)
}

func (b *Bot) handleAdminTimeoutSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	uid := modalValue(i, "user_id")
	if !digitsRe.MatchString(uid) {
		respondErr(s, i, "Provide a numeric user ID.")
		return
	}
	minutes, err := strconv.Atoi(modalValue(i, "minutes"))
	if err != nil || minutes < 1 {
		respondErr(s, i, "Provide a duration in minutes (at least 1).")
		return
	}
	if minutes > 40320 {
		minutes = 40320
	}
	reason := modalValue(i, "reason")
	deferEphemeral(s, i)
	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := s.GuildMemberTimeout(i.GuildID, uid, &until); err != nil {
		log.Error().Err(err).Str("target", uid).Msg("panel timeout failed")
		followUp(s, i, "❌ Timeout failed. Check **Moderate Members**.")
		return
	}
	followUp(s, i, fmt.Sprintf("⏳ <@%s> timed out for **%d min**.", uid, minutes))
	b.record(i.GuildID, "Timeout (panel)", interactionUserID(i), uid,
		fmt.Sprintf("Minutes: %d\nReason: %s", minutes, reason))
}

func (b *Bot) handleAdminRoleSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	uid := modalValue(i, "user_id")
	rid := modalValue(i, "role_id")
	if !digitsRe.MatchString(uid) || !digitsRe.MatchString(rid) {
		respondErr(s, i, "Provide numeric user and role IDs.")
		return
	}
	action := modalValue(i, "action")
	reason := modalValue(i, "reason")
	deferEphemeral(s, i)

	switch action {
	case "add", "a":
		if err := s.GuildMemberRoleAdd(i.GuildID, uid, rid); err != nil {
			log.Error().Err(err).Str("target", uid).Str("role", rid).Msg("panel role add failed")
			followUp(s, i, "❌ Could not add the role.")
			return
		}
		followUp(s, i, fmt.Sprintf("✅ Role <@&%s> added to <@%s>.", rid, uid))
		b.record(i.GuildID, "Role added (panel)", interactionUserID(i), uid,
			fmt.Sprintf("Role: %s\nReason: %s", rid, reason))
	case "remove", "r":
		if err := s.GuildMemberRoleRemove(i.GuildID, uid, rid); err != nil {
			log.Error().Err(err).Str("target", uid).Str("role", rid).Msg("panel role remove failed")
			followUp(s, i, "❌ Could not remove the role.")
			return
		}
		followUp(s, i, fmt.Sprintf("✅ Role <@&%s> removed from <@%s>.", rid, uid))
		b.record(i.GuildID, "Role removed (panel)", interactionUserID(i), uid,
			fmt.Sprintf("Role: %s\nReason: %s", rid, reason))
	default:
		followUp(s, i, "⚠️ Invalid action. Use `add` or `remove`.")
	}
}

// handleAdminEventSubmit schedules an event on a voice or stage channel,
// starting shortly after creation and running for an hour.
func (b *Bot) handleAdminEventSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	name := modalValue(i, "name")
	channelID := modalValue(i, "channel_id")
	description := modalValue(i, "description")
	if !digitsRe.MatchString(channelID) {
		respondErr(s, i, "Provide a numeric channel ID.")
		return
	}
	deferEphemeral(s, i)

	ch, err := s.Channel(channelID)
	if err != nil {
		followUp(s, i, "❌ Could not resolve that channel.")
		return
	}
	var entity discordgo.GuildScheduledEventEntityType
	switch ch.Type {
	case discordgo.ChannelTypeGuildStageVoice:
		entity = discordgo.GuildScheduledEventEntityTypeStageInstance
	case discordgo.ChannelTypeGuildVoice:
		entity = discordgo.GuildScheduledEventEntityTypeVoice
	default:
		followUp(s, i, "❌ Provide the ID of a **voice** or **stage** channel.")
		return
	}

	start := time.Now().Add(2 * time.Minute)
	end := start.Add(time.Hour)
	ev, err := s.GuildScheduledEventCreate(i.GuildID, &discordgo.GuildScheduledEventParams{
		Name:               name,
		Description:        description,
		ChannelID:          ch.ID,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		EntityType:         entity,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
	})
	if err != nil {
		log.Error().Err(err).Str("channel", ch.ID).Msg("event create failed")
		followUp(s, i, "❌ Could not create the event. Check **Manage Events**.")
		return
	}
	followUp(s, i, fmt.Sprintf("✅ Event created: **%s** (starts in ~2 min).", ev.Name))
	b.record(i.GuildID, "Event created (panel)", interactionUserID(i), "",
		fmt.Sprintf("Event: %s (%s)\nChannel: <#%s>", ev.Name, ev.ID, ch.ID))
}

func (b *Bot) handleAdminStage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the admin panel.")
		return
	}
	deferEphemeral(s, i)
	stage, err := s.GuildChannelCreate(i.GuildID, "Community Stage", discordgo.ChannelTypeGuildStageVoice)
	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("stage create failed")
		followUp(s, i, "❌ Could not create the stage. Check **Manage Channels**.")
		return
	}
	followUp(s, i, fmt.Sprintf("✅ Stage created: **%s** (`%s`)", stage.Name, stage.ID))
	b.record(i.GuildID, "Stage created (panel)", interactionUserID(i), "",
		fmt.Sprintf("Stage: %s (%s)", stage.Name, stage.ID))
}
