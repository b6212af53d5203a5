package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/audit"
)

// Stable component identifiers. Activations are routed back to the owning
// session through these plus the anchor message/channel id.
const (
	pollVotePrefix = "lzim_poll_"
	giveawayJoinID = "lzim_giveaway_join"

	ticketOpenID         = "lzim_ticket_open"
	ticketClaimID        = "lzim_ticket_claim"
	ticketLockID         = "lzim_ticket_lock"
	ticketAddUserID      = "lzim_ticket_adduser"
	ticketCloseID        = "lzim_ticket_close"
	ticketAddUserModalID = "lzim_ticket_adduser_modal"

	formStartID   = "lzim_form_start"
	formApproveID = "lzim_form_approve"
	formRejectID  = "lzim_form_reject"
	formModalID   = "lzim_form_modal"

	adminBanID     = "lzim_admin_ban"
	adminKickID    = "lzim_admin_kick"
	adminTimeoutID = "lzim_admin_timeout"
	adminRoleID    = "lzim_admin_role"
	adminEventID   = "lzim_admin_event"
	adminStageID   = "lzim_admin_stage"

	adminBanModalID     = "lzim_admin_ban_modal"
	adminKickModalID    = "lzim_admin_kick_modal"
	adminTimeoutModalID = "lzim_admin_timeout_modal"
	adminRoleModalID    = "lzim_admin_role_modal"
	adminEventModalID   = "lzim_admin_event_modal"
)

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: msg},
	})
	if err != nil {
		log.Warn().Err(err).Msg("interaction respond failed")
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("interaction respond failed")
	}
}

func respondErr(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	respondEphemeral(s, i, "❌ "+msg)
}

func respondDenied(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	respondEphemeral(s, i, "🚫 "+msg)
}

// respondNotFound is the distinct reply for a session the registry does not
// know about (restart, or already finalized and dropped).
func respondNotFound(s *discordgo.Session, i *discordgo.InteractionCreate, what string) {
	respondEphemeral(s, i, "⚠️ Can't locate this "+what+" — it may predate the last bot restart.")
}

// deferEphemeral acknowledges the interaction so work can exceed the
// immediate-response window; answer with followUp.
func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.Warn().Err(err).Msg("interaction defer failed")
	}
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: msg,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Warn().Err(err).Msg("followup failed")
	}
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func hasPermission(i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&(perm|discordgo.PermissionAdministrator) != 0
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// record posts an audit entry; failures are the sink's problem, never the
// invoking user's.
func (b *Bot) record(guildID, action, actorID, targetID, details string) {
	b.audit.Record(audit.Entry{
		GuildID:  guildID,
		Action:   action,
		ActorID:  actorID,
		TargetID: targetID,
		Details:  details,
		At:       time.Now(),
	})
}

// memberPresent reports whether a user is still in the guild, preferring
// the gateway state cache over a REST fetch.
func memberPresent(s *discordgo.Session, guildID, userID string) bool {
	if m, err := s.State.Member(guildID, userID); err == nil && m != nil {
		return true
	}
	m, err := s.GuildMember(guildID, userID)
	return err == nil && m != nil
}
