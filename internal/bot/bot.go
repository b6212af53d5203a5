// Package bot wires the slash-command surface to the in-memory session
// core. One Bot is constructed at process start and owns every registry;
// there is no package-level mutable state.
package bot

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/audit"
	"github.com/JKZIMgamer/lzim-bot/internal/capability"
	"github.com/JKZIMgamer/lzim-bot/internal/config"
	"github.com/JKZIMgamer/lzim-bot/internal/sched"
	"github.com/JKZIMgamer/lzim-bot/internal/session"
)

// candidature links a posted recruitment embed back to its applicant.
type candidature struct {
	GuildID string
	UserID  string
}

type Bot struct {
	cfg   *config.Config
	caps  capability.Resolver
	audit audit.Sink
	store *audit.Store
	sched sched.Scheduler

	polls     *session.Registry[*session.Poll]
	giveaways *session.Registry[*session.Giveaway]
	tickets   *session.Registry[*session.Ticket]

	// recruitment form routing: guild id -> destination channel id, and
	// candidature message id -> applicant.
	formDests    *session.Registry[string]
	candidatures *session.Registry[candidature]

	musicMu sync.Mutex
	players map[string]*player
}

func New(cfg *config.Config, caps capability.Resolver, sink audit.Sink, store *audit.Store, scheduler sched.Scheduler) *Bot {
	return &Bot{
		cfg:          cfg,
		caps:         caps,
		audit:        sink,
		store:        store,
		sched:        scheduler,
		polls:        session.NewRegistry[*session.Poll](),
		giveaways:    session.NewRegistry[*session.Giveaway](),
		tickets:      session.NewRegistry[*session.Ticket](),
		formDests:    session.NewRegistry[string](),
		candidatures: session.NewRegistry[candidature](),
		players:      make(map[string]*player),
	}
}

func (b *Bot) Ready(s *discordgo.Session, _ *discordgo.Ready) {
	log.Info().Str("user", s.State.User.Username).Msg("gateway ready")
}

// HandleInteraction routes slash commands, button activations and modal
// submissions. A failing handler never takes the process down.
func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("interaction handler panicked")
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModal(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	switch name {
	case "poll":
		b.cmdPoll(s, i)
	case "giveaway":
		b.cmdGiveaway(s, i)
	case "reroll":
		b.cmdReroll(s, i)
	case "ticketpanel":
		b.cmdTicketPanel(s, i)
	case "auditlog":
		b.cmdAuditLog(s, i)
	case "kick":
		b.cmdKick(s, i)
	case "ban":
		b.cmdBan(s, i)
	case "unban":
		b.cmdUnban(s, i)
	case "timeout":
		b.cmdTimeout(s, i)
	case "untimeout":
		b.cmdUntimeout(s, i)
	case "clear":
		b.cmdClear(s, i)
	case "lockchannel":
		b.cmdLockChannel(s, i, true)
	case "unlockchannel":
		b.cmdLockChannel(s, i, false)
	case "slowmode":
		b.cmdSlowmode(s, i)
	case "announce":
		b.cmdAnnounce(s, i)
	case "recruitpanel":
		b.cmdRecruitPanel(s, i)
	case "setupvips":
		b.cmdSetupVIPs(s, i)
	case "organizeroles":
		b.cmdOrganizeRoles(s, i)
	case "remind":
		b.cmdRemind(s, i)
	case "suggest":
		b.cmdSuggest(s, i)
	case "luck":
		b.cmdLuck(s, i)
	case "play":
		b.cmdPlay(s, i)
	case "skip":
		b.cmdSkip(s, i)
	case "stopmusic":
		b.cmdStopMusic(s, i)
	case "pause":
		b.cmdPause(s, i)
	case "resume":
		b.cmdResume(s, i)
	case "leave":
		b.cmdLeave(s, i)
	case "adminpanel":
		b.cmdAdminPanel(s, i)
	case "chatperms":
		b.cmdChatPerms(s, i)
	case "clearuser":
		b.cmdClearUser(s, i)
	case "say":
		b.cmdSay(s, i)
	case "calc":
		b.cmdCalc(s, i)
	case "now":
		b.cmdNow(s, i)
	case "avatar":
		b.cmdAvatar(s, i)
	case "banner":
		b.cmdBanner(s, i)
	case "servericon":
		b.cmdServerIcon(s, i)
	default:
		log.Warn().Str("command", name).Msg("unknown command")
	}
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	id := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(id, pollVotePrefix):
		b.handlePollVote(s, i)
	case id == giveawayJoinID:
		b.handleGiveawayJoin(s, i)
	case id == ticketOpenID:
		b.handleTicketOpen(s, i)
	case id == ticketClaimID:
		b.handleTicketClaim(s, i)
	case id == ticketLockID:
		b.handleTicketLock(s, i)
	case id == ticketAddUserID:
		b.handleTicketAddUser(s, i)
	case id == ticketCloseID:
		b.handleTicketClose(s, i)
	case id == formStartID:
		b.handleFormStart(s, i)
	case id == formApproveID:
		b.handleFormDecision(s, i, true)
	case id == formRejectID:
		b.handleFormDecision(s, i, false)
	case id == adminBanID:
		b.handleAdminButton(s, i, adminBanModalID)
	case id == adminKickID:
		b.handleAdminButton(s, i, adminKickModalID)
	case id == adminTimeoutID:
		b.handleAdminButton(s, i, adminTimeoutModalID)
	case id == adminRoleID:
		b.handleAdminButton(s, i, adminRoleModalID)
	case id == adminEventID:
		b.handleAdminButton(s, i, adminEventModalID)
	case id == adminStageID:
		b.handleAdminStage(s, i)
	default:
		log.Warn().Str("custom_id", id).Msg("unknown component")
	}
}

func (b *Bot) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	id := i.ModalSubmitData().CustomID
	switch id {
	case ticketAddUserModalID:
		b.handleTicketAddUserSubmit(s, i)
	case formModalID:
		b.handleFormSubmit(s, i)
	case adminBanModalID:
		b.handleAdminBanSubmit(s, i)
	case adminKickModalID:
		b.handleAdminKickSubmit(s, i)
	case adminTimeoutModalID:
		b.handleAdminTimeoutSubmit(s, i)
	case adminRoleModalID:
		b.handleAdminRoleSubmit(s, i)
	case adminEventModalID:
		b.handleAdminEventSubmit(s, i)
	default:
		log.Warn().Str("custom_id", id).Msg("unknown modal")
	}
}
