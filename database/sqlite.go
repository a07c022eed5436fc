package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const maxOpenConns = 4

type SqliteDB struct {
	pool *sqlx.DB
	log  *zap.Logger
	path string
}

// NewSqliteDatabase opens (creating if needed) the database file at c.Path and
// makes sure the schema exists.
func NewSqliteDatabase(c *Config) (*SqliteDB, error) {
	db := &SqliteDB{
		log:  c.Log,
		path: c.Path,
	}

	if dir := filepath.Dir(db.path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}
	}

	dsn := "file:" + db.path + "?_busy_timeout=5000&_journal_mode=WAL"
	pool, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		db.log.Error("unable to connect to db", zap.String("path", db.path), zap.Error(err))
		return nil, errors.Wrap(err, "failed to open database")
	}
	pool.SetMaxOpenConns(maxOpenConns)

	if _, err := pool.Exec(schemaPrefix); err != nil {
		_ = pool.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}
	db.pool = pool

	db.log.Info("opened database", zap.String("path", db.path))
	return db, nil
}

func (s *SqliteDB) GetConn() *sqlx.DB {
	return s.pool
}

func (s *SqliteDB) Close() error {
	return s.pool.Close()
}

func (s *SqliteDB) GetPrefix(ctx context.Context, guildID uint64) (string, error) {
	var row PrefixRow
	err := s.pool.GetContext(ctx, &row, "SELECT guild_id, prefix FROM Prefix WHERE guild_id = ?;", formatID(guildID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", errors.Wrap(err, "failed to get prefix")
	}
	if row.Prefix == nil {
		return "", errors.Wrapf(ErrMalformedRow, "guild %v has a null prefix", row.GuildID)
	}
	return *row.Prefix, nil
}

func (s *SqliteDB) SetPrefix(ctx context.Context, guildID uint64, prefix string) error {
	_, err := s.pool.ExecContext(ctx, "INSERT OR REPLACE INTO Prefix (guild_id, prefix) VALUES (?, ?);", formatID(guildID), prefix)
	return errors.Wrap(err, "failed to set prefix")
}

// GetAllPrefixes returns every well-formed row. Malformed rows are skipped and
// reported in the returned error alongside the valid entries.
func (s *SqliteDB) GetAllPrefixes(ctx context.Context) (map[uint64]string, error) {
	var rows []PrefixRow
	if err := s.pool.SelectContext(ctx, &rows, "SELECT guild_id, prefix FROM Prefix;"); err != nil {
		return nil, errors.Wrap(err, "failed to get prefixes")
	}

	prefixes := make(map[uint64]string, len(rows))
	var errs error
	for _, row := range rows {
		gid, err := strconv.ParseUint(row.GuildID, 10, 64)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(ErrMalformedRow, "guild id %q", row.GuildID))
			continue
		}
		if row.Prefix == nil {
			errs = multierr.Append(errs, errors.Wrapf(ErrMalformedRow, "guild %v has a null prefix", gid))
			continue
		}
		prefixes[gid] = *row.Prefix
	}
	return prefixes, errs
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
