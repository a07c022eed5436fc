package kvstore

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/flat/lupusregina/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound is returned for missing or expired keys.
var ErrNotFound = errors.New("key not found")

const gcInterval = time.Hour

type Config struct {
	Path string
	Log  *zap.Logger
}

// Store is a badger-backed cache for gob encodable values with per-key TTL.
type Store struct {
	db  *badger.DB
	log *zap.Logger
}

func NewStore(c *Config) (*Store, error) {
	s := &Store{
		log: c.Log,
	}

	opts := badger.DefaultOptions(c.Path)
	opts.Truncate = true
	opts.ValueLogLoadingMode = options.FileIO
	opts.NumVersionsToKeep = 1
	opts.Logger = logger.NewBadgerLogger(c.Log.Named("badger"))

	db, err := badger.Open(opts)
	if err != nil {
		s.log.Error("failed to open kvstore", zap.String("path", c.Path), zap.Error(err))
		return nil, errors.Wrap(err, "failed to open kvstore")
	}
	s.db = db

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Set stores v under key. A ttl of zero keeps the entry until deleted.
func (s *Store) Set(key string, v interface{}, ttl time.Duration) error {
	enc, err := encodeGob(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %v", key)
	}

	entry := badger.NewEntry([]byte(key), enc)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
}

// Get decodes the value under key into v.
func (s *Store) Get(key string, v interface{}) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return decodeGob(value, v)
	})
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to read value", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "failed to read %v", key)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// RunGC reclaims value log space every hour until ctx is done.
func (s *Store) RunGC(ctx context.Context) {
	gcTicker := time.NewTicker(gcInterval)
	defer gcTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-gcTicker.C:
			s.collect()
		}
	}
}

func (s *Store) collect() {
	for {
		err := s.db.RunValueLogGC(0.7)
		if err == badger.ErrNoRewrite {
			return
		}
		if err != nil {
			s.log.Error("failed to run gc", zap.Error(err))
			return
		}
	}
}
