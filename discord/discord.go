package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Intents requested by every shard. Message content is privileged and is
// required for prefix commands.
const Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentsGuildMembers | discordgo.IntentMessageContent

// Event is a gateway event together with the shard session it arrived on.
type Event struct {
	Sess *discordgo.Session
	Data interface{}
}

type Discord struct {
	token    string
	Sess     *discordgo.Session
	sessions []*discordgo.Session
	log      *zap.Logger

	Events chan *Event
}

// NewDiscord creates one session per shard. A shard count of zero or less
// asks Discord for the recommended count.
func NewDiscord(token string, shards int, log *zap.Logger) (*Discord, error) {
	if shards <= 0 {
		n, err := recommendedShards(token)
		if err != nil {
			return nil, err
		}
		shards = n
	}
	return newDiscord(token, shards, log)
}

func newDiscord(token string, shards int, log *zap.Logger) (*Discord, error) {
	if shards <= 0 {
		shards = 1
	}

	d := &Discord{
		token:  token,
		log:    log,
		Events: make(chan *Event, 256),
	}

	for i := 0; i < shards; i++ {
		s, err := discordgo.New("Bot " + d.token)
		if err != nil {
			return nil, errors.Wrapf(err, "create session for shard %d", i)
		}

		s.State.TrackVoice = false
		s.State.TrackPresences = false
		s.ShardCount = shards
		s.ShardID = i
		s.Identify.Intents = Intents
		s.AddHandler(onEvent(d.Events))

		d.sessions = append(d.sessions, s)
		d.log.Debug("created session", zap.Int("shard", i), zap.Int("shards", shards))
	}
	d.Sess = d.sessions[0]

	return d, nil
}

func onEvent(e chan *Event) func(s *discordgo.Session, i interface{}) {
	return func(s *discordgo.Session, i interface{}) {
		e <- &Event{Sess: s, Data: i}
	}
}

// Sessions returns the shard sessions in shard order.
func (d *Discord) Sessions() []*discordgo.Session {
	return d.sessions
}

// Open opens the Discord sessions.
func (d *Discord) Open() error {
	for _, sess := range d.sessions {
		if err := sess.Open(); err != nil {
			return errors.Wrapf(err, "open shard %d", sess.ShardID)
		}
	}
	return nil
}

// Close closes the Discord sessions
func (d *Discord) Close() {
	for _, sess := range d.sessions {
		if err := sess.Close(); err != nil {
			d.log.Error("failed to close discord session", zap.Int("shard", sess.ShardID), zap.Error(err))
		}
	}
}

// recommendedShards asks discord for the recommended shardcount for the bot given the token.
func recommendedShards(token string) (int, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return -1, err
	}

	resp, err := s.GatewayBot()
	if err != nil {
		return -1, errors.Wrap(err, "fetch recommended shard count")
	}
	return resp.Shards, nil
}
