package prefix

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/flat/lupusregina/database"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	sync.Mutex
	rows   map[uint64]string
	setErr error
	allErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uint64]string)}
}

func (m *memStore) GetPrefix(_ context.Context, guildID uint64) (string, error) {
	m.Lock()
	defer m.Unlock()
	p, ok := m.rows[guildID]
	if !ok {
		return "", database.ErrNotFound
	}
	return p, nil
}

func (m *memStore) SetPrefix(_ context.Context, guildID uint64, prefix string) error {
	m.Lock()
	defer m.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.rows[guildID] = prefix
	return nil
}

func (m *memStore) GetAllPrefixes(_ context.Context) (map[uint64]string, error) {
	m.Lock()
	defer m.Unlock()
	out := make(map[uint64]string, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, m.allErr
}

func newTestService(store Store) *Service {
	return NewService(&Config{Store: store, Log: zap.NewNop()})
}

func TestResolveDefaults(t *testing.T) {
	s := newTestService(newMemStore())

	assert.Equal(t, ".", s.Resolve("456"))
	assert.Equal(t, "", s.Resolve(""), "direct messages need no prefix")
	assert.Equal(t, ".", s.Resolve("not-a-guild"))
}

func TestSetThenResolve(t *testing.T) {
	s := newTestService(newMemStore())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 123, "!"))
	assert.Equal(t, "!", s.Resolve("123"))
	assert.Equal(t, "!", s.Lookup(123))
	assert.Equal(t, ".", s.Resolve("456"))

	require.NoError(t, s.Set(ctx, 123, "?"))
	assert.Equal(t, "?", s.Resolve("123"))
}

func TestSetIdempotent(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 1, "!"))
	first := s.Cache().Snapshot()
	require.NoError(t, s.Set(ctx, 1, "!"))

	assert.Equal(t, first, s.Cache().Snapshot())
	all, err := store.GetAllPrefixes(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, all)
}

func TestSetStoreFailureLeavesCache(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 1, "!"))
	store.setErr = errors.New("disk full")

	err := s.Set(ctx, 1, "?")
	assert.Error(t, err)
	assert.Equal(t, "!", s.Lookup(1))
}

func TestSetRejectsInvalid(t *testing.T) {
	s := newTestService(newMemStore())

	for _, p := range []string{"", "a b", "\t", "12345678901234567"} {
		err := s.Set(context.Background(), 1, p)
		assert.ErrorIs(t, err, ErrInvalidPrefix, "prefix %q", p)
	}
	assert.Equal(t, 0, s.Cache().Len())
}

func TestWarm(t *testing.T) {
	store := newMemStore()
	store.rows[10] = "!"
	store.rows[20] = ">>"
	s := newTestService(store)

	require.NoError(t, s.Warm(context.Background()))
	assert.Equal(t, "!", s.Resolve("10"))
	assert.Equal(t, ">>", s.Resolve("20"))
	assert.Equal(t, ".", s.Resolve("30"))
}

func TestWarmPartial(t *testing.T) {
	store := newMemStore()
	store.rows[10] = "!"
	store.allErr = database.ErrMalformedRow
	s := newTestService(store)

	err := s.Warm(context.Background())
	assert.ErrorIs(t, err, database.ErrMalformedRow)
	assert.Equal(t, "!", s.Resolve("10"), "valid rows still load")
}

func TestSetDefault(t *testing.T) {
	s := NewService(&Config{Store: newMemStore(), Default: "~"})
	assert.Equal(t, "~", s.Resolve("1"))

	require.NoError(t, s.SetDefault("!"))
	assert.Equal(t, "!", s.Resolve("1"))
	assert.Error(t, s.SetDefault(""))
	assert.Equal(t, "!", s.Default())
}

func TestCacheMatchesStoreAfterConcurrentSets(t *testing.T) {
	db, err := database.NewSqliteDatabase(&database.Config{
		Log:  zap.NewNop(),
		Path: filepath.Join(t.TempDir(), "lupus.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	s := newTestService(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				gid := uint64(j)
				assert.NoError(t, s.Set(ctx, gid, fmt.Sprintf("p%v", i)))
				_ = s.Resolve(fmt.Sprint(gid))
			}
		}(i)
	}
	wg.Wait()

	all, err := db.GetAllPrefixes(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, s.Cache().Snapshot())

	fresh := newTestService(db)
	require.NoError(t, fresh.Warm(ctx))
	assert.Equal(t, s.Cache().Snapshot(), fresh.Cache().Snapshot())
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"single char", "!", false},
		{"word", "lupus", false},
		{"unicode", "ルプス", false},
		{"max length", "1234567890123456", false},
		{"empty", "", true},
		{"space", "a b", true},
		{"newline", "a\n", true},
		{"too long", "12345678901234567", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.prefix)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrefix)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
