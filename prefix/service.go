package prefix

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultPrefix is used for guilds without a stored prefix.
const DefaultPrefix = "."

// MaxLength is the longest prefix accepted, in runes.
const MaxLength = 16

var ErrInvalidPrefix = errors.New("invalid prefix")

// Store is the durable side of the service.
type Store interface {
	GetPrefix(ctx context.Context, guildID uint64) (string, error)
	SetPrefix(ctx context.Context, guildID uint64, prefix string) error
	GetAllPrefixes(ctx context.Context) (map[uint64]string, error)
}

type Config struct {
	Store   Store
	Log     *zap.Logger
	Default string
}

// Service owns the prefix store and its cache, and resolves the prefix for
// incoming messages.
type Service struct {
	store Store
	cache *Cache
	log   *zap.Logger
	def   atomic.Value

	// serializes writes so the cache sees them in store commit order
	writeMu sync.Mutex
}

func NewService(c *Config) *Service {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store: c.Store,
		cache: NewCache(),
		log:   log,
	}
	def := c.Default
	if def == "" {
		def = DefaultPrefix
	}
	s.def.Store(def)
	return s
}

// Warm loads every stored prefix into the cache. When some rows are
// malformed the valid ones are still loaded and the error is returned.
func (s *Service) Warm(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prefixes, err := s.store.GetAllPrefixes(ctx)
	if prefixes != nil {
		s.cache.Replace(prefixes)
	}
	if err != nil {
		s.log.Error("failed to load some prefixes", zap.Int("loaded", len(prefixes)), zap.Error(err))
		return err
	}
	s.log.Info("loaded prefixes", zap.Int("count", len(prefixes)))
	return nil
}

// Resolve returns the prefix to use for a message in the given guild. Direct
// messages have no guild and need no prefix.
func (s *Service) Resolve(guildID string) string {
	if guildID == "" {
		return ""
	}
	gid, err := strconv.ParseUint(guildID, 10, 64)
	if err != nil {
		s.log.Warn("unparseable guild id", zap.String("guildID", guildID))
		return s.Default()
	}
	return s.Lookup(gid)
}

func (s *Service) Lookup(guildID uint64) string {
	if p, ok := s.cache.Lookup(guildID); ok {
		return p
	}
	return s.Default()
}

// Set writes prefix through to the store and then the cache. The cache is
// left untouched when the store write fails.
func (s *Service) Set(ctx context.Context, guildID uint64, prefix string) error {
	if err := ValidatePrefix(prefix); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.SetPrefix(ctx, guildID, prefix); err != nil {
		s.log.Error("failed to store prefix", zap.Uint64("guildID", guildID), zap.Error(err))
		return err
	}
	s.cache.Update(guildID, prefix)
	s.log.Info("set prefix", zap.Uint64("guildID", guildID), zap.String("prefix", prefix))
	return nil
}

func (s *Service) Default() string {
	return s.def.Load().(string)
}

func (s *Service) SetDefault(prefix string) error {
	if err := ValidatePrefix(prefix); err != nil {
		return err
	}
	s.def.Store(prefix)
	return nil
}

func (s *Service) Cache() *Cache {
	return s.cache
}

func ValidatePrefix(p string) error {
	if p == "" {
		return errors.Wrap(ErrInvalidPrefix, "prefix is empty")
	}
	if strings.IndexFunc(p, unicode.IsSpace) >= 0 {
		return errors.Wrap(ErrInvalidPrefix, "prefix contains whitespace")
	}
	if utf8.RuneCountInString(p) > MaxLength {
		return errors.Wrapf(ErrInvalidPrefix, "prefix is longer than %v characters", MaxLength)
	}
	return nil
}
