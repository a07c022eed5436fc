package bot

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flat/lupusregina/anilist"
	"github.com/flat/lupusregina/config"
	"github.com/flat/lupusregina/discord"
	"github.com/flat/lupusregina/fandom"
	"github.com/flat/lupusregina/kvstore"
	"github.com/flat/lupusregina/prefix"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Bot struct {
	log       *zap.Logger
	disc      *discord.Discord
	router    *Router
	prefixes  *prefix.Service
	store     *kvstore.Store
	anilist   *anilist.Client
	fandom    *fandom.Client
	config    *Config
	startTime time.Time

	ownersMu sync.RWMutex
	owners   map[string]struct{}

	// react adds the result reaction to a command message
	react func(s *discordgo.Session, channelID, messageID, emoji string) error

	presenceMu sync.Mutex
	presence   discordgo.UpdateStatusData
	status     string
}

type Config struct {
	Token    string
	Shards   int
	Log      *zap.Logger
	Level    zap.AtomicLevel
	Prefixes *prefix.Service
	Store    *kvstore.Store
	AniList  *anilist.Client
	Fandom   *fandom.Client

	// AniListInterval is the minimum spacing between AniList lookups.
	AniListInterval time.Duration
	LookupTTL       time.Duration
	Status          string

	// Reload re-reads the configuration for the reload command.
	Reload func() (*config.Config, error)
}

func NewBot(c *Config) (*Bot, error) {
	disc, err := discord.NewDiscord(c.Token, c.Shards, c.Log.Named("discord"))
	if err != nil {
		return nil, err
	}
	return newBot(c, disc), nil
}

func newBot(c *Config, disc *discord.Discord) *Bot {
	b := &Bot{
		log:       c.Log.Named("bot"),
		disc:      disc,
		router:    NewRouter(),
		prefixes:  c.Prefixes,
		store:     c.Store,
		anilist:   c.AniList,
		fandom:    c.Fandom,
		config:    c,
		startTime: time.Now(),
		owners:    make(map[string]struct{}),
		react:     addReaction,
	}
	if c.Level == (zap.AtomicLevel{}) {
		c.Level = zap.NewAtomicLevel()
	}
	b.status = c.Status
	b.presence = defaultPresence(c.Status)
	return b
}

func (b *Bot) Close() {
	b.disc.Close()
}

// Run warms the prefix cache and resolves the owners before any shard
// connects, so no message is dispatched against a cold cache.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.prefixes.Warm(ctx); err != nil {
		b.log.Warn("prefix cache warmed with errors", zap.Int("cached", b.prefixes.Cache().Len()), zap.Error(err))
	}

	if err := b.fetchOwners(); err != nil {
		return err
	}

	if err := b.registerCommands(); err != nil {
		return err
	}

	go b.listen(ctx, b.disc.Events)
	if b.store != nil {
		go b.store.RunGC(ctx)
	}

	return b.disc.Open()
}

func (b *Bot) fetchOwners() error {
	app, err := b.disc.Sess.Application("@me")
	if err != nil {
		return errors.Wrap(err, "fetch application info")
	}

	owners := make(map[string]struct{})
	if app.Owner != nil {
		owners[app.Owner.ID] = struct{}{}
	}
	if app.Team != nil {
		for _, m := range app.Team.Members {
			if m.User != nil {
				owners[m.User.ID] = struct{}{}
			}
		}
	}
	b.setOwners(owners)
	b.log.Info("resolved owners", zap.Int("count", len(owners)))
	return nil
}

func (b *Bot) setOwners(owners map[string]struct{}) {
	b.ownersMu.Lock()
	defer b.ownersMu.Unlock()
	b.owners = owners
}

func (b *Bot) IsOwner(userID string) bool {
	b.ownersMu.RLock()
	defer b.ownersMu.RUnlock()
	_, ok := b.owners[userID]
	return ok
}

func (b *Bot) listen(ctx context.Context, evtCh <-chan *discord.Event) {
	for {
		var evt *discord.Event
		select {
		case <-ctx.Done():
			return
		case evt = <-evtCh:
		}

		switch e := evt.Data.(type) {
		case *discordgo.Ready:
			go b.readyHandler(evt.Sess, e)
		case *discordgo.Resumed:
			b.log.Info("resumed", zap.Int("shard", evt.Sess.ShardID))
		case *discordgo.Disconnect:
			b.log.Info("disconnected", zap.Int("shard", evt.Sess.ShardID))
		case *discordgo.MessageCreate:
			go b.messageCreateHandler(evt.Sess, e)
		}
	}
}

func (b *Bot) readyHandler(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("logged in",
		zap.String("user", r.User.String()),
		zap.Int("shard", s.ShardID),
		zap.Int("guilds", len(r.Guilds)),
	)

	b.presenceMu.Lock()
	data := b.presence
	b.presenceMu.Unlock()
	if err := s.UpdateStatusComplex(data); err != nil {
		b.log.Error("failed to set presence", zap.Int("shard", s.ShardID), zap.Error(err))
	}
}

func (b *Bot) messageCreateHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	botID := ""
	if s.State.User != nil {
		botID = s.State.User.ID
	}

	pfx := b.prefixes.Resolve(m.GuildID)
	name, rest, ok := ParseInvocation(m.Content, pfx, botID)
	if !ok {
		return
	}
	cmd := b.router.Find(name)
	if cmd == nil {
		return
	}

	c := &Context{
		Sess:     s,
		Msg:      m.Message,
		Mentions: commandMentions(m.Message, botID),
		Args:     NewArgs(rest),
		Prefix:   pfx,
		Command:  cmd,
	}

	inv := invocation{
		private: c.IsPrivate(),
		owner:   b.IsOwner(m.Author.ID),
		args:    c.Args.Len(),
	}
	if cmd.Permissions != 0 && !inv.private {
		inv.permissions = b.memberPermissions(s, m.Message)
	}

	if err := checkCommand(cmd, inv); err != nil {
		b.log.Debug("dispatch error", zap.String("command", cmd.Name), zap.String("user", m.Author.ID), zap.Error(err))
		return
	}
	if !b.router.Allow(cmd.Bucket) {
		b.log.Debug("dispatch error", zap.String("command", cmd.Name), zap.String("bucket", cmd.Bucket), zap.Error(ErrRateLimited))
		return
	}

	b.runCommand(c)
}

func (b *Bot) runCommand(c *Context) {
	reaction := reactSuccess
	if err := c.Command.Run(c); err != nil {
		reaction = reactFailure
		b.log.Error("command failed",
			zap.String("command", c.Command.Name),
			zap.String("guild", c.Msg.GuildID),
			zap.String("user", c.Msg.Author.ID),
			zap.Error(err),
		)
	}
	if err := b.react(c.Sess, c.Msg.ChannelID, c.Msg.ID, reaction); err != nil {
		b.log.Debug("failed to react", zap.String("message", c.Msg.ID), zap.Error(err))
	}
}

func addReaction(s *discordgo.Session, channelID, messageID, emoji string) error {
	return s.MessageReactionAdd(channelID, messageID, emoji)
}

// commandMentions drops the bot from the mentions of a message that invoked
// it by mention. Discord lists each mentioned user once.
func commandMentions(m *discordgo.Message, botID string) []*discordgo.User {
	if botID == "" || !(strings.HasPrefix(m.Content, "<@"+botID+">") || strings.HasPrefix(m.Content, "<@!"+botID+">")) {
		return m.Mentions
	}
	out := make([]*discordgo.User, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		if u != nil && u.ID != botID {
			out = append(out, u)
		}
	}
	return out
}

// memberPermissions returns the author's permissions in the message channel,
// or zero when the state holds too little to tell.
func (b *Bot) memberPermissions(s *discordgo.Session, m *discordgo.Message) int64 {
	if p, err := b.disc.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
		return p
	}
	p, err := s.State.MessagePermissions(m)
	if err != nil {
		b.log.Debug("failed to resolve permissions", zap.String("channel", m.ChannelID), zap.Error(err))
		return 0
	}
	return p
}

func (b *Bot) setPresence(data discordgo.UpdateStatusData) error {
	b.presenceMu.Lock()
	b.presence = data
	b.presenceMu.Unlock()
	return b.disc.UpdateStatus(data)
}

// globalRand hands the fun generators the goroutine safe math/rand functions.
type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n)
}
