package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flat/lupusregina/prefix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "abc")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "abc", c.Token)
	assert.Equal(t, ".", c.DefaultPrefix)
	assert.Equal(t, 0, c.Shards)
	assert.Equal(t, time.Hour, c.LookupTTL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "https://graphql.anilist.co", c.AniListEndpoint)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DATABASE_PATH", "/tmp/prefixes.db")

	c, err := Read(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, c.Token)
	assert.Equal(t, "/tmp/prefixes.db", c.DatabasePath)
}

func TestLoadDotenv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DEFAULT_PREFIX", "!")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TOKEN=from-file\nDEFAULT_PREFIX=?\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Token, "existing variables win on Load")
	assert.Equal(t, "!", c.DefaultPrefix)

	c, err = Reload(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.Token, "dotenv wins on Reload")
	assert.Equal(t, "?", c.DefaultPrefix)
}

func TestValidateDefaultPrefixMatchesReload(t *testing.T) {
	c := Config{Token: "t", DefaultPrefix: strings.Repeat("x", 17), AniListInterval: time.Second}
	assert.ErrorIs(t, c.Validate(), prefix.ErrInvalidPrefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Config
		wantErr bool
	}{
		{"valid", Config{Token: "t", DefaultPrefix: ".", AniListInterval: time.Second}, false},
		{"blank token", Config{Token: "  ", DefaultPrefix: ".", AniListInterval: time.Second}, true},
		{"whitespace prefix", Config{Token: "t", DefaultPrefix: "a b", AniListInterval: time.Second}, true},
		{"unicode whitespace prefix", Config{Token: "t", DefaultPrefix: "a\u00a0b", AniListInterval: time.Second}, true},
		{"longest prefix", Config{Token: "t", DefaultPrefix: strings.Repeat("!", 16), AniListInterval: time.Second}, false},
		{"prefix too long", Config{Token: "t", DefaultPrefix: strings.Repeat("!", 17), AniListInterval: time.Second}, true},
		{"empty prefix", Config{Token: "t", AniListInterval: time.Second}, true},
		{"negative shards", Config{Token: "t", DefaultPrefix: ".", Shards: -1, AniListInterval: time.Second}, true},
		{"zero interval", Config{Token: "t", DefaultPrefix: "."}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
