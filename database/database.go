package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the guild has no custom prefix.
	ErrNotFound = errors.New("no prefix stored for guild")
	// ErrMalformedRow marks a stored row that could not be decoded.
	ErrMalformedRow = errors.New("malformed prefix row")
)

type DB interface {
	GetConn() *sqlx.DB
	Close() error

	GetPrefix(ctx context.Context, guildID uint64) (string, error)
	SetPrefix(ctx context.Context, guildID uint64, prefix string) error
	GetAllPrefixes(ctx context.Context) (map[uint64]string, error)
}

type Config struct {
	Log  *zap.Logger
	Path string
}

// PrefixRow mirrors a row of the Prefix table. Guild IDs are kept as text.
type PrefixRow struct {
	GuildID string  `db:"guild_id"`
	Prefix  *string `db:"prefix"`
}

const schemaPrefix = `
CREATE TABLE IF NOT EXISTS Prefix (
	guild_id TEXT PRIMARY KEY,
	prefix   TEXT
);
`
