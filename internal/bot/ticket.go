package bot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/capability"
	"github.com/JKZIMgamer/lzim-bot/internal/session"
)

const ticketCategoryName = "🎫 Tickets"

var channelSlugRe = regexp.MustCompile(`[^a-z0-9_-]`)

func (b *Bot) cmdTicketPanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can publish the ticket panel.")
		return
	}
	channelID := i.ChannelID
	if o, ok := optionMap(i)["channel"]; ok {
		channelID = o.ChannelValue(nil).ID
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎫 Support — open a ticket",
		Description: "Need help? Click the button below to open a ticket.\n\n" +
			"• You and the staff team will share a private channel\n" +
			"• When it's resolved the ticket is closed and you get a summary by DM",
		Color: 0x5865f2,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "📩 Open ticket", Style: discordgo.PrimaryButton, CustomID: ticketOpenID},
		}},
	}
	if _, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	}); err != nil {
		log.Error().Err(err).Msg("ticket panel post failed")
		respondErr(s, i, "Could not publish the panel.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Ticket panel published in <#%s>.", channelID))
	b.record(i.GuildID, "Ticket panel published", interactionUserID(i), "", "Channel: <#"+channelID+">")
}

// handleTicketOpen provisions a fresh private channel per activation. There
// is deliberately no dedupe against an existing open ticket for the owner.
func (b *Bot) handleTicketOpen(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ownerID := interactionUserID(i)
	deferEphemeral(s, i)

	ch, err := b.createTicketChannel(s, i.GuildID, i.Member)
	if err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("ticket channel create failed")
		followUp(s, i, "❌ Could not create your ticket. Ping an administrator.")
		return
	}

	t := session.NewTicket(uuid.NewString(), ownerID, ch.ID)
	b.tickets.Put(ch.ID, t)

	if _, err := s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s> thanks for opening a ticket! The team will reply shortly.", ownerID),
		Embed:      ticketControlsEmbed(t),
		Components: ticketControls(),
	}); err != nil {
		log.Warn().Err(err).Str("channel", ch.ID).Msg("ticket controls post failed")
	}

	followUp(s, i, fmt.Sprintf("✅ Your ticket is ready: <#%s>", ch.ID))
	b.record(i.GuildID, "Ticket created", ownerID, "", fmt.Sprintf("Channel: <#%s> (%s)", ch.ID, ch.ID))
}

// createTicketChannel builds the private channel: @everyone hidden, owner
// and staff roles visible. Partial overwrite failures leave the channel as
// the platform left it; the caller only reports success or failure.
func (b *Bot) createTicketChannel(s *discordgo.Session, guildID string, owner *discordgo.Member) (*discordgo.Channel, error) {
	catID, err := b.ticketCategory(s, guildID)
	if err != nil {
		log.Warn().Err(err).Msg("ticket category unavailable, creating channel at top level")
	}

	memberAllow := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory)
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: owner.User.ID, Type: discordgo.PermissionOverwriteTypeMember, Allow: memberAllow},
	}
	for _, roleID := range b.cfg.StaffRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: memberAllow | discordgo.PermissionManageChannels,
		})
	}

	slug := strings.ToLower(channelSlugRe.ReplaceAllString(strings.ToLower(owner.User.Username), "-"))
	if len(slug) > 16 {
		slug = slug[:16]
	}

	return s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 "ticket-" + slug,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             catID,
		Topic:                fmt.Sprintf("Ticket for %s (ID %s)", owner.User.Username, owner.User.ID),
		PermissionOverwrites: overwrites,
	})
}

func (b *Bot) ticketCategory(s *discordgo.Session, guildID string) (string, error) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return "", err
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && c.Name == ticketCategoryName {
			return c.ID, nil
		}
	}
	cat, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: ticketCategoryName,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return "", err
	}
	return cat.ID, nil
}

func ticketControlsEmbed(t *session.Ticket) *discordgo.MessageEmbed {
	claimed := "—"
	if id := t.ClaimedBy(); id != "" {
		claimed = "<@" + id + ">"
	}
	status := "🔓 Open"
	color := 0x57f287
	if t.Locked() {
		status = "🔒 Locked (staff only)"
		color = 0xe67e22
	}
	return &discordgo.MessageEmbed{
		Title: "🎫 Ticket panel",
		Description: fmt.Sprintf(
			"**Owner:** <@%s> (`%s`)\n**Handler:** %s\n**Status:** %s\n\nUse the buttons below to manage this ticket.",
			t.OwnerID, t.OwnerID, claimed, status),
		Color: color,
	}
}

func ticketControls() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "➕ Add user", Style: discordgo.PrimaryButton, CustomID: ticketAddUserID},
			discordgo.Button{Label: "🧷 Claim", Style: discordgo.SecondaryButton, CustomID: ticketClaimID},
			discordgo.Button{Label: "🔒 Lock/unlock", Style: discordgo.SecondaryButton, CustomID: ticketLockID},
			discordgo.Button{Label: "✅ Close", Style: discordgo.SuccessButton, CustomID: ticketCloseID},
		}},
	}
}

// requireTicket resolves the ticket for the interaction's channel and
// enforces the staff capability shared by every control button.
func (b *Bot) requireTicket(s *discordgo.Session, i *discordgo.InteractionCreate) (*session.Ticket, bool) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can use the ticket controls.")
		return nil, false
	}
	t, ok := b.tickets.Get(i.ChannelID)
	if !ok {
		respondNotFound(s, i, "ticket")
		return nil, false
	}
	return t, true
}

func (b *Bot) handleTicketClaim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	t, ok := b.requireTicket(s, i)
	if !ok {
		return
	}
	actorID := interactionUserID(i)
	t.Claim(actorID) // last writer wins, no already-claimed rejection
	respondEphemeral(s, i, fmt.Sprintf("🧷 Ticket claimed by <@%s>.", actorID))
	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embed:      ticketControlsEmbed(t),
		Components: ticketControls(),
	}); err != nil {
		log.Warn().Err(err).Msg("ticket panel refresh failed")
	}
	b.record(i.GuildID, "Ticket claimed", actorID, t.OwnerID, "Channel: <#"+i.ChannelID+">")
}

func (b *Bot) handleTicketLock(s *discordgo.Session, i *discordgo.InteractionCreate) {
	t, ok := b.requireTicket(s, i)
	if !ok {
		return
	}
	locked := t.ToggleLock()
	if err := b.applyTicketLock(s, i.GuildID, t, locked); err != nil {
		log.Error().Err(err).Str("channel", i.ChannelID).Msg("ticket lock apply failed")
		respondErr(s, i, "Could not update channel permissions.")
		return
	}
	if locked {
		respondEphemeral(s, i, "🔒 Ticket **locked** — only staff can post.")
	} else {
		respondEphemeral(s, i, "🔓 Ticket **unlocked**.")
	}
	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embed:      ticketControlsEmbed(t),
		Components: ticketControls(),
	}); err != nil {
		log.Warn().Err(err).Msg("ticket panel refresh failed")
	}
	b.record(i.GuildID, "Ticket lock toggled", interactionUserID(i), t.OwnerID,
		fmt.Sprintf("Channel: <#%s> locked=%v", i.ChannelID, locked))
}

// applyTicketLock rewrites the owner's overwrite: locked means read-only
// for everyone but staff, unlocked restores the owner's write access.
func (b *Bot) applyTicketLock(s *discordgo.Session, guildID string, t *session.Ticket, locked bool) error {
	view := int64(discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory)
	if locked {
		return s.ChannelPermissionSet(t.ChannelID, t.OwnerID,
			discordgo.PermissionOverwriteTypeMember, view, discordgo.PermissionSendMessages)
	}
	return s.ChannelPermissionSet(t.ChannelID, t.OwnerID,
		discordgo.PermissionOverwriteTypeMember, view|discordgo.PermissionSendMessages, 0)
}

func (b *Bot) handleTicketAddUser(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can add users.")
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: ticketAddUserModalID,
			Title:    "Add a user to this ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "user_id",
						Label:       "User ID",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. 123456789012345678",
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("add-user modal failed")
	}
}

func (b *Bot) handleTicketAddUserSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// The modal gate alone is not enough; the check must hold where the
	// overwrite is actually applied.
	if !b.caps.Has(i.Member, capability.Staff) {
		respondDenied(s, i, "Only staff can add users.")
		return
	}
	t, ok := b.tickets.Get(i.ChannelID)
	if !ok {
		respondNotFound(s, i, "ticket")
		return
	}
	userID := modalValue(i, "user_id")
	if userID == "" {
		respondErr(s, i, "Provide a user ID.")
		return
	}
	deferEphemeral(s, i)
	if !memberPresent(s, i.GuildID, userID) {
		followUp(s, i, "❌ That user is not in this server.")
		return
	}
	err := s.ChannelPermissionSet(t.ChannelID, userID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionReadMessageHistory, 0)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("ticket add-user failed")
		followUp(s, i, "❌ Could not add that user.")
		return
	}
	followUp(s, i, fmt.Sprintf("✅ <@%s> added to the ticket.", userID))
	b.record(i.GuildID, "Ticket user added", interactionUserID(i), userID, "Channel: <#"+i.ChannelID+">")
}

// handleTicketClose is irreversible: summary DM to the owner (best effort),
// channel deletion, and registry removal happen in one operation so no
// dangling entry is left behind.
func (b *Bot) handleTicketClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	t, ok := b.requireTicket(s, i)
	if !ok {
		return
	}
	actorID := interactionUserID(i)
	deferEphemeral(s, i)

	summary := &discordgo.MessageEmbed{
		Title:       "🎫 Ticket closed",
		Description: "Thanks for reaching out. Open another ticket from the panel if you need more help.",
		Color:       0xed4245,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channel", Value: fmt.Sprintf("`%s`", t.ChannelID), Inline: false},
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", t.OwnerID), Inline: true},
		},
	}
	if id := t.ClaimedBy(); id != "" {
		summary.Fields = append(summary.Fields, &discordgo.MessageEmbedField{
			Name: "Handler", Value: fmt.Sprintf("<@%s>", id), Inline: true,
		})
	}

	if dm, err := s.UserChannelCreate(t.OwnerID); err == nil {
		if _, err := s.ChannelMessageSendEmbed(dm.ID, summary); err != nil {
			log.Warn().Err(err).Str("owner", t.OwnerID).Msg("ticket summary DM failed")
		}
	} else {
		log.Warn().Err(err).Str("owner", t.OwnerID).Msg("ticket summary DM channel failed")
	}

	b.record(i.GuildID, "Ticket closed", actorID, t.OwnerID,
		fmt.Sprintf("Channel: %s\nHandler: %s", t.ChannelID, t.ClaimedBy()))

	if _, err := s.ChannelDelete(t.ChannelID); err != nil {
		log.Error().Err(err).Str("channel", t.ChannelID).Msg("ticket channel delete failed")
		followUp(s, i, "❌ Could not delete the ticket channel.")
		return
	}
	b.tickets.Remove(t.ChannelID)
}

func modalValue(i *discordgo.InteractionCreate, customID string) string {
	for _, row := range i.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if ti, ok := comp.(*discordgo.TextInput); ok && ti.CustomID == customID {
				return strings.TrimSpace(ti.Value)
			}
		}
	}
	return ""
}
