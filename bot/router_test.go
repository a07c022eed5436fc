package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopCommand(name string, aliases ...string) *Command {
	return &Command{Name: name, Aliases: aliases, Run: func(*Context) error { return nil }}
}

func TestRouterRegisterAndFind(t *testing.T) {
	r := NewRouter()
	require.NoError(t, r.Register(nopCommand("eightball", "8ball"), nopCommand("ping")))

	assert.Equal(t, "eightball", r.Find("8BALL").Name)
	assert.Equal(t, "eightball", r.Find("EightBall").Name)
	assert.Equal(t, "ping", r.Find("ping").Name)
	assert.Nil(t, r.Find("pong"))

	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "eightball", cmds[0].Name)
	assert.Equal(t, "ping", cmds[1].Name)
}

func TestRouterRegisterDuplicate(t *testing.T) {
	r := NewRouter()
	require.NoError(t, r.Register(nopCommand("ping")))

	assert.Error(t, r.Register(nopCommand("Ping")))
	assert.Error(t, r.Register(nopCommand("pong", "ping")))
	assert.Nil(t, r.Find("pong"), "a rejected command leaves no aliases behind")

	assert.Error(t, r.Register(&Command{Name: "norun"}))
	assert.Error(t, r.Register(nopCommand("")))
}

func TestRouterBuckets(t *testing.T) {
	r := NewRouter()
	r.AddBucket("anilist", time.Hour, 1)

	assert.True(t, r.Allow(""))
	assert.True(t, r.Allow("unknown"))
	assert.True(t, r.Allow("anilist"))
	assert.False(t, r.Allow("anilist"))
}

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		prefix   string
		wantName string
		wantRest string
		wantOk   bool
	}{
		{"default prefix", ".ping", ".", "ping", "", true},
		{"custom prefix with args", "!8ball will it  rain? ", "!", "8ball", "will it  rain?", true},
		{"name lower cased", "!PING", "!", "ping", "", true},
		{"multi rune prefix", "lr>help ping", "lr>", "help", "ping", true},
		{"other prefix", ".ping", "!", "", "", false},
		{"prefix only", "!", "!", "", "", false},
		{"space after prefix", "! ping", "!", "", "", false},
		{"mention", "<@42> ping", "!", "ping", "", true},
		{"nick mention", "<@!42>   setprefix ?", "!", "setprefix", "?", true},
		{"other mention", "<@43> ping", "!", "", "", false},
		{"empty prefix in dms", "help", "", "help", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rest, ok := ParseInvocation(tt.content, tt.prefix, "42")
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestCheckCommand(t *testing.T) {
	setprefix := &Command{
		Name:           "setprefix",
		MinArgs:        1,
		GuildOnly:      true,
		OwnerPrivilege: true,
		Permissions:    discordgo.PermissionAdministrator,
	}
	ban := &Command{Name: "ban", GuildOnly: true, Permissions: discordgo.PermissionBanMembers}
	info := &Command{Name: "info", OwnersOnly: true}
	about := &Command{Name: "about"}

	tests := []struct {
		name string
		cmd  *Command
		inv  invocation
		want error
	}{
		{"plain command in dm", about, invocation{private: true}, nil},
		{"guild only in dm", setprefix, invocation{private: true, args: 1}, ErrGuildOnly},
		{"missing args", setprefix, invocation{args: 0, permissions: discordgo.PermissionAdministrator}, ErrNoArgs},
		{"admin sets prefix", setprefix, invocation{args: 1, permissions: discordgo.PermissionAdministrator}, nil},
		{"member sets prefix", setprefix, invocation{args: 1, permissions: discordgo.PermissionSendMessages}, ErrMissingPermissions},
		{"owner privilege", setprefix, invocation{args: 1, owner: true}, nil},
		{"owner without privilege", ban, invocation{owner: true}, ErrMissingPermissions},
		{"ban with permission", ban, invocation{permissions: discordgo.PermissionBanMembers}, nil},
		{"admin bans", ban, invocation{permissions: discordgo.PermissionAdministrator}, nil},
		{"owner only by owner", info, invocation{owner: true, private: true}, nil},
		{"owner only by member", info, invocation{}, ErrOwnersOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCommand(tt.cmd, tt.inv)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
