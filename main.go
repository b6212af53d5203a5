package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/audit"
	"github.com/JKZIMgamer/lzim-bot/internal/bot"
	"github.com/JKZIMgamer/lzim-bot/internal/capability"
	"github.com/JKZIMgamer/lzim-bot/internal/config"
	"github.com/JKZIMgamer/lzim-bot/internal/sched"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration load failed")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, err := audit.OpenStore(cfg.AuditStatePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.AuditStatePath).Msg("audit store open failed")
	}
	archive, err := audit.OpenArchive(cfg.AuditArchivePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.AuditArchivePath).Msg("audit archive open failed")
	}
	defer archive.Close()

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("discord session create failed")
	}

	sink := audit.MultiSink{
		archive,
		audit.NewDiscordSink(dg, store, cfg.CentralGuildID, cfg.CentralLogsRoleID),
	}
	caps := capability.NewRoleMap(cfg.StaffRoleIDs, cfg.MusicRoleIDs)

	b := bot.New(cfg, caps, sink, store, sched.New())
	dg.AddHandler(b.Ready)
	dg.AddHandler(b.HandleInteraction)
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates

	if err := dg.Open(); err != nil {
		log.Fatal().Err(err).Msg("gateway open failed")
	}
	defer dg.Close()

	// Empty guild id registers the commands globally.
	if _, err := dg.ApplicationCommandBulkOverwrite(dg.State.User.ID, cfg.GuildID, b.Commands()); err != nil {
		log.Fatal().Err(err).Msg("command registration failed")
	}
	log.Info().Int("commands", len(b.Commands())).Str("guild", cfg.GuildID).Msg("slash commands registered")

	log.Info().Msg("bot running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
	log.Info().Msg("shutting down")
}
