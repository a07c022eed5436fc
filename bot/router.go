package bot

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var (
	ErrGuildOnly          = errors.New("command can only be used in a guild")
	ErrOwnersOnly         = errors.New("command is restricted to bot owners")
	ErrMissingPermissions = errors.New("missing required permissions")
	ErrRateLimited        = errors.New("command is rate limited")
)

type Command struct {
	Name        string
	Aliases     []string
	Group       string
	Description string
	Usage       string
	Example     string
	MinArgs     int
	GuildOnly   bool
	OwnersOnly  bool
	// OwnerPrivilege lets owners skip the permission check.
	OwnerPrivilege bool
	Permissions    int64
	Bucket         string
	Run            func(c *Context) error
}

// Router holds the registered commands and the rate limit buckets they
// share.
type Router struct {
	sync.RWMutex
	commands []*Command
	index    map[string]*Command
	buckets  map[string]*rate.Limiter
}

func NewRouter() *Router {
	return &Router{
		index:   make(map[string]*Command),
		buckets: make(map[string]*rate.Limiter),
	}
}

// Register adds commands under their names and aliases. A name that is
// already taken fails the registration and nothing from that command is
// added.
func (r *Router) Register(cmds ...*Command) error {
	r.Lock()
	defer r.Unlock()

	for _, cmd := range cmds {
		if cmd.Run == nil {
			return errors.Errorf("command %v has no run function", cmd.Name)
		}
		keys := append([]string{cmd.Name}, cmd.Aliases...)
		for _, k := range keys {
			k = strings.ToLower(k)
			if k == "" {
				return errors.Errorf("command %v has an empty name or alias", cmd.Name)
			}
			if _, ok := r.index[k]; ok {
				return errors.Errorf("command name %v is already registered", k)
			}
		}
		for _, k := range keys {
			r.index[strings.ToLower(k)] = cmd
		}
		r.commands = append(r.commands, cmd)
	}
	return nil
}

// Find looks up a command by name or alias, ignoring case.
func (r *Router) Find(name string) *Command {
	r.RLock()
	defer r.RUnlock()
	return r.index[strings.ToLower(name)]
}

// Commands returns the commands in registration order.
func (r *Router) Commands() []*Command {
	r.RLock()
	defer r.RUnlock()
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// AddBucket creates a named limiter allowing burst uses, refilled once
// every interval.
func (r *Router) AddBucket(name string, every time.Duration, burst int) {
	r.Lock()
	defer r.Unlock()
	r.buckets[name] = rate.NewLimiter(rate.Every(every), burst)
}

// Allow reports whether the bucket has a token left. Unknown buckets are
// unlimited.
func (r *Router) Allow(bucket string) bool {
	if bucket == "" {
		return true
	}
	r.RLock()
	lim, ok := r.buckets[bucket]
	r.RUnlock()
	if !ok {
		return true
	}
	return lim.Allow()
}

// ParseInvocation strips the bot mention or the prefix from content and
// splits the rest into a lower cased command name and its arguments.
func ParseInvocation(content, prefix, botID string) (name, rest string, ok bool) {
	var body string
	switch {
	case botID != "" && strings.HasPrefix(content, "<@"+botID+">"):
		body = strings.TrimLeftFunc(content[len("<@"+botID+">"):], unicode.IsSpace)
	case botID != "" && strings.HasPrefix(content, "<@!"+botID+">"):
		body = strings.TrimLeftFunc(content[len("<@!"+botID+">"):], unicode.IsSpace)
	case strings.HasPrefix(content, prefix):
		body = content[len(prefix):]
	default:
		return "", "", false
	}

	i := strings.IndexFunc(body, unicode.IsSpace)
	if i < 0 {
		name = body
	} else {
		name, rest = body[:i], strings.TrimSpace(body[i:])
	}
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), rest, true
}

// invocation is what the checks need to know about a message.
type invocation struct {
	private     bool
	owner       bool
	args        int
	permissions int64
}

func checkCommand(cmd *Command, inv invocation) error {
	if cmd.GuildOnly && inv.private {
		return ErrGuildOnly
	}
	if cmd.OwnersOnly && !inv.owner {
		return ErrOwnersOnly
	}
	if inv.args < cmd.MinArgs {
		return errors.Wrapf(ErrNoArgs, "%v needs at least %v", cmd.Name, cmd.MinArgs)
	}
	if cmd.Permissions != 0 && !(inv.owner && cmd.OwnerPrivilege) {
		if inv.private || !hasPermissions(inv.permissions, cmd.Permissions) {
			return ErrMissingPermissions
		}
	}
	return nil
}
