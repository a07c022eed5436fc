package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/flat/lupusregina/prefix"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// ErrMissingToken is returned when BOT_TOKEN is absent or empty.
var ErrMissingToken = errors.New("BOT_TOKEN is not set")

type Config struct {
	Token           string        `envconfig:"BOT_TOKEN"`
	Shards          int           `envconfig:"SHARDS" default:"0"`
	DefaultPrefix   string        `envconfig:"DEFAULT_PREFIX" default:"."`
	DatabasePath    string        `envconfig:"DATABASE_PATH" default:"./data/lupus.db"`
	CachePath       string        `envconfig:"CACHE_PATH" default:"./data/cache"`
	LookupTTL       time.Duration `envconfig:"LOOKUP_TTL" default:"1h"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Status          string        `envconfig:"STATUS"`
	AniListEndpoint string        `envconfig:"ANILIST_ENDPOINT" default:"https://graphql.anilist.co"`
	AniListInterval time.Duration `envconfig:"ANILIST_INTERVAL" default:"1s"`
	FandomURL       string        `envconfig:"FANDOM_URL" default:"https://virtualyoutuber.fandom.com"`
}

// Load reads the given dotenv files (".env" when none are given) into the
// environment without overriding variables that are already set, then
// processes the environment into a Config.
func Load(files ...string) (*Config, error) {
	c, err := Read(files...)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Read is Load without validation, for tools that never connect to Discord.
func Read(files ...string) (*Config, error) {
	if err := loadEnv(godotenv.Load, files); err != nil {
		return nil, err
	}
	return process()
}

// Reload is like Load, except values from the dotenv files take precedence
// over the current environment.
func Reload(files ...string) (*Config, error) {
	if err := loadEnv(godotenv.Overload, files); err != nil {
		return nil, err
	}
	c, err := process()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadEnv(load func(...string) error, files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "failed to load %v", f)
		}
	}
	return nil
}

func process() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}
	return &c, nil
}

func (c *Config) Validate() error {
	c.Token = strings.TrimSpace(c.Token)
	if c.Token == "" {
		return ErrMissingToken
	}
	if err := prefix.ValidatePrefix(c.DefaultPrefix); err != nil {
		return errors.Wrap(err, "DEFAULT_PREFIX")
	}
	if c.Shards < 0 {
		return errors.Errorf("invalid shard count %v", c.Shards)
	}
	if c.AniListInterval <= 0 {
		return errors.Errorf("invalid anilist interval %v", c.AniListInterval)
	}
	return nil
}
