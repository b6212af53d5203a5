package bot

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"
	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/capability"
)

var errPlaybackStopped = errors.New("playback stopped")

type track struct {
	Title       string
	StreamURL   string
	PageURL     string
	RequestedBy string
}

// player is the per-guild voice pipeline: one queue, one connection, one
// goroutine draining the queue. skip aborts the current track only; halt
// tears the whole player down.
type player struct {
	guildID   string
	channelID string

	mu      sync.Mutex
	queue   []track
	playing bool
	stream  *dca.StreamingSession

	vc       *discordgo.VoiceConnection
	skip     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// halt signals the player to stop. Safe to call any number of times from
// any goroutine; the stop channel is closed exactly once.
func (p *player) halt() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *player) setStream(ss *dca.StreamingSession) {
	p.mu.Lock()
	p.stream = ss
	p.mu.Unlock()
}

// setPaused pauses or resumes the current stream, reporting whether a
// stream was active.
func (p *player) setPaused(paused bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return false
	}
	p.stream.SetPaused(paused)
	return true
}

func (b *Bot) getPlayer(guildID string) *player {
	b.musicMu.Lock()
	defer b.musicMu.Unlock()
	if p, ok := b.players[guildID]; ok {
		return p
	}
	p := &player{
		guildID: guildID,
		skip:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	b.players[guildID] = p
	return p
}

// dropPlayer removes p from the table only while it is still the current
// player for its guild, so a goroutine tearing down an old player can never
// evict a replacement that started in the meantime.
func (b *Bot) dropPlayer(p *player) {
	b.musicMu.Lock()
	if cur, ok := b.players[p.guildID]; ok && cur == p {
		delete(b.players, p.guildID)
	}
	b.musicMu.Unlock()
}

func (b *Bot) cmdPlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Music) {
		respondDenied(s, i, "Music commands are reserved for the music VIP roles.")
		return
	}
	query := optionMap(i)["query"].StringValue()
	deferEphemeral(s, i)

	t, err := resolveTrack(query, interactionUserID(i))
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("track resolution failed")
		followUp(s, i, "❌ Could not resolve that link. Paste a YouTube video URL.")
		return
	}

	voiceChannelID := b.voiceTarget(s, i)
	if voiceChannelID == "" {
		followUp(s, i, "❌ Join a voice channel first (or configure a music channel).")
		return
	}

	p := b.getPlayer(i.GuildID)
	p.mu.Lock()
	p.channelID = voiceChannelID
	p.queue = append(p.queue, t)
	queued := len(p.queue)
	startLoop := !p.playing
	if startLoop {
		p.playing = true
	}
	p.mu.Unlock()

	if startLoop {
		go b.runPlayer(s, p)
		followUp(s, i, fmt.Sprintf("▶️ Now playing: **%s**", t.Title))
	} else {
		followUp(s, i, fmt.Sprintf("➕ Queued at position **%d**: **%s**", queued, t.Title))
	}
	b.record(i.GuildID, "Music play", interactionUserID(i), "",
		fmt.Sprintf("Title: %s\nURL: %s", t.Title, t.PageURL))
}

func (b *Bot) cmdSkip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Music) {
		respondDenied(s, i, "Music commands are reserved for the music VIP roles.")
		return
	}
	b.musicMu.Lock()
	p, ok := b.players[i.GuildID]
	b.musicMu.Unlock()
	if !ok || !p.isPlaying() {
		respondEphemeral(s, i, "ℹ️ Nothing is playing.")
		return
	}
	select {
	case p.skip <- struct{}{}:
	default:
	}
	respondEphemeral(s, i, "⏭️ Skipped.")
	b.record(i.GuildID, "Music skip", interactionUserID(i), "", "")
}

func (b *Bot) cmdStopMusic(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Music) {
		respondDenied(s, i, "Music commands are reserved for the music VIP roles.")
		return
	}
	b.musicMu.Lock()
	p, ok := b.players[i.GuildID]
	b.musicMu.Unlock()
	if !ok || !p.isPlaying() {
		respondEphemeral(s, i, "ℹ️ Nothing is playing.")
		return
	}
	p.halt()
	b.dropPlayer(p)
	respondEphemeral(s, i, "⏹️ Stopped and left the voice channel.")
	b.record(i.GuildID, "Music stop", interactionUserID(i), "", "")
}

func (b *Bot) cmdPause(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.setMusicPaused(s, i, true, "⏸️ Paused.")
}

func (b *Bot) cmdResume(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.setMusicPaused(s, i, false, "▶️ Resuming.")
}

func (b *Bot) setMusicPaused(s *discordgo.Session, i *discordgo.InteractionCreate, paused bool, msg string) {
	if !b.caps.Has(i.Member, capability.Music) {
		respondDenied(s, i, "Music commands are reserved for the music VIP roles.")
		return
	}
	b.musicMu.Lock()
	p, ok := b.players[i.GuildID]
	b.musicMu.Unlock()
	if !ok || !p.setPaused(paused) {
		respondEphemeral(s, i, "ℹ️ Nothing is playing.")
		return
	}
	respondEphemeral(s, i, msg)
}

// cmdLeave tears the player down like /stopmusic; the connection's lifetime
// is tied to the queue goroutine, so stopping and leaving are one motion.
func (b *Bot) cmdLeave(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Music) {
		respondDenied(s, i, "Music commands are reserved for the music VIP roles.")
		return
	}
	b.musicMu.Lock()
	p, ok := b.players[i.GuildID]
	b.musicMu.Unlock()
	if !ok {
		respondEphemeral(s, i, "ℹ️ I'm not in a voice channel.")
		return
	}
	p.halt()
	b.dropPlayer(p)
	respondEphemeral(s, i, "👋 Left the voice channel.")
	b.record(i.GuildID, "Music leave", interactionUserID(i), "", "")
}

func (p *player) isPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// voiceTarget picks where to play: the caller's current voice channel,
// falling back to the configured music channel.
func (b *Bot) voiceTarget(s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if vs, err := s.State.VoiceState(i.GuildID, interactionUserID(i)); err == nil && vs != nil {
		return vs.ChannelID
	}
	return b.cfg.MusicChannelID
}

// resolveTrack turns a YouTube URL into a direct audio stream URL.
func resolveTrack(query, requestedBy string) (track, error) {
	client := youtube.Client{}
	video, err := client.GetVideo(query)
	if err != nil {
		return track{}, err
	}
	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return track{}, errors.New("no audio formats available")
	}
	streamURL, err := client.GetStreamURL(video, &formats[0])
	if err != nil {
		return track{}, err
	}
	return track{
		Title:       video.Title,
		StreamURL:   streamURL,
		PageURL:     "https://www.youtube.com/watch?v=" + video.ID,
		RequestedBy: requestedBy,
	}, nil
}

// runPlayer drains the queue until it is empty or the player is stopped,
// then disconnects from voice.
func (b *Bot) runPlayer(s *discordgo.Session, p *player) {
	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
		if p.vc != nil {
			if err := p.vc.Disconnect(); err != nil {
				log.Warn().Err(err).Str("guild", p.guildID).Msg("voice disconnect failed")
			}
		}
		b.dropPlayer(p)
	}()

	vc, err := s.ChannelVoiceJoin(p.guildID, p.channelID, false, true)
	if err != nil {
		log.Error().Err(err).Str("guild", p.guildID).Msg("voice join failed")
		return
	}
	p.vc = vc

	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if err := p.playTrack(t); err != nil {
			if errors.Is(err, errPlaybackStopped) {
				return
			}
			log.Warn().Err(err).Str("title", t.Title).Msg("track playback failed")
		}
	}
}

func (p *player) playTrack(t track) error {
	opts := *dca.StdEncodeOptions
	opts.RawOutput = true
	opts.Bitrate = 96
	opts.Application = dca.AudioApplicationAudio

	enc, err := dca.EncodeFile(t.StreamURL, &opts)
	if err != nil {
		return err
	}
	defer enc.Cleanup()

	if err := p.vc.Speaking(true); err != nil {
		return err
	}
	defer func() {
		if err := p.vc.Speaking(false); err != nil {
			log.Warn().Err(err).Msg("speaking flag reset failed")
		}
	}()

	done := make(chan error)
	p.setStream(dca.NewStream(enc, p.vc, done))
	defer p.setStream(nil)
	select {
	case err := <-done:
		// io.EOF is the normal end of a track.
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case <-p.skip:
		return nil
	case <-p.stop:
		return errPlaybackStopped
	}
}
