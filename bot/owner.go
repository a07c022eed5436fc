package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flat/lupusregina/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrInvalidPresence = errors.New("invalid presence")

func newInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "info",
		Group:       "Owner",
		Description: "Shows the running information of the bot.",
		OwnersOnly:  true,
		Run: func(c *Context) error {
			embed := &discordgo.MessageEmbed{
				Title:       "Running Information",
				Color:       int(Fabled),
				Description: fmt.Sprintf("Currently running %v - %v", Name, Version),
			}
			if me := c.Sess.State.User; me != nil {
				embed.Author = &discordgo.MessageEmbedAuthor{Name: me.Username, IconURL: me.AvatarURL("")}
			}
			AddEmbedField(embed, "Uptime", FormatUptime(time.Since(b.startTime)), false)
			AddEmbedField(embed, "Guilds", fmt.Sprint(b.disc.GuildCount()), false)
			AddEmbedField(embed, "Private Channels", fmt.Sprint(b.disc.PrivateChannelCount()), false)
			AddEmbedField(embed, "Cached Prefixes", fmt.Sprint(b.prefixes.Cache().Len()), false)
			_, err := c.ReplyEmbed(embed)
			return err
		},
	}
}

func newReloadCommand(b *Bot) *Command {
	return &Command{
		Name:        "reload",
		Group:       "Owner",
		Description: "Reloads the log level, default prefix and status from the configuration.",
		OwnersOnly:  true,
		Run: func(c *Context) error {
			if err := b.reload(); err != nil {
				return err
			}
			_, err := c.Reply("Reloaded config!")
			return err
		},
	}
}

func (b *Bot) reload() error {
	if b.config.Reload == nil {
		return errors.New("reloading is not configured")
	}
	cfg, err := b.config.Reload()
	if err != nil {
		return errors.Wrap(err, "reload config")
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := b.prefixes.SetDefault(cfg.DefaultPrefix); err != nil {
		return err
	}
	b.config.Level.SetLevel(level.Level())

	b.presenceMu.Lock()
	b.status = cfg.Status
	b.presenceMu.Unlock()
	if err := b.setPresence(defaultPresence(cfg.Status)); err != nil {
		b.log.Warn("failed to update presence after reload", zap.Error(err))
	}

	b.log.Info("reloaded config",
		zap.String("level", level.String()),
		zap.String("default_prefix", cfg.DefaultPrefix),
		zap.String("status", cfg.Status),
	)
	return nil
}

func newNicknameCommand(b *Bot) *Command {
	return &Command{
		Name:        "nickname",
		Group:       "Owner",
		Description: "Changes the bot's nickname for the current guild.",
		Usage:       `["<nickname>"]`,
		Example:     `"Shalltear Bloodfallen"`,
		GuildOnly:   true,
		OwnersOnly:  true,
		Run: func(c *Context) error {
			nick := ""
			if !c.Args.Empty() {
				nick, _ = c.Args.SingleQuoted()
			}
			return c.Sess.GuildMemberNickname(c.GuildID(), "@me", nick)
		},
	}
}

func newPresenceCommand(b *Bot) *Command {
	return &Command{
		Name:        "presence",
		Group:       "Owner",
		Description: "Changes the bot's presence. Valid states are online, idle, dnd and invisible. " +
			"Valid activities are playing, listening and streaming; streaming takes a URL before the text.",
		Usage:      "<online|idle|dnd|invisible|reset|set <state> <activity> [<url>] <text>>",
		Example:    "set online streaming https://twitch.tv/HeyZeusHeresToast Bloodborne",
		MinArgs:    1,
		OwnersOnly: true,
		Run: func(c *Context) error {
			b.presenceMu.Lock()
			current, def := b.presence, defaultPresence(b.status)
			b.presenceMu.Unlock()

			data, err := parsePresence(c.Args, current, def)
			if err != nil {
				return err
			}
			return b.setPresence(data)
		},
	}
}

func defaultPresence(status string) discordgo.UpdateStatusData {
	data := discordgo.UpdateStatusData{
		Status:     string(discordgo.StatusOnline),
		Activities: []*discordgo.Activity{},
	}
	if status != "" {
		data.Activities = append(data.Activities, &discordgo.Activity{Name: status, Type: discordgo.ActivityTypeGame})
	}
	return data
}

func parseStatus(s string) (discordgo.Status, error) {
	switch strings.ToLower(s) {
	case "online":
		return discordgo.StatusOnline, nil
	case "idle":
		return discordgo.StatusIdle, nil
	case "dnd":
		return discordgo.StatusDoNotDisturb, nil
	case "invisible":
		return discordgo.StatusInvisible, nil
	case "offline":
		return discordgo.StatusOffline, nil
	}
	return "", errors.Wrapf(ErrInvalidPresence, "unknown status %q", s)
}

// parsePresence builds the presence a presence command asks for. State
// changes keep the current activity, reset returns to def.
func parsePresence(args *Args, current, def discordgo.UpdateStatusData) (discordgo.UpdateStatusData, error) {
	sub, err := args.Single()
	if err != nil {
		return current, err
	}

	switch strings.ToLower(sub) {
	case "reset":
		return def, nil
	case "set":
		return parseSetPresence(args)
	}

	status, err := parseStatus(sub)
	if err != nil {
		return current, err
	}
	current.Status = string(status)
	return current, nil
}

func parseSetPresence(args *Args) (discordgo.UpdateStatusData, error) {
	var data discordgo.UpdateStatusData

	state, err := args.Single()
	if err != nil {
		return data, err
	}
	status, err := parseStatus(state)
	if err != nil {
		return data, err
	}

	kind, err := args.Single()
	if err != nil {
		return data, err
	}
	activity := &discordgo.Activity{}
	switch strings.ToLower(kind) {
	case "playing":
		activity.Type = discordgo.ActivityTypeGame
	case "listening":
		activity.Type = discordgo.ActivityTypeListening
	case "streaming":
		activity.Type = discordgo.ActivityTypeStreaming
		if activity.URL, err = args.Single(); err != nil {
			return data, err
		}
	default:
		return data, errors.Wrapf(ErrInvalidPresence, "unknown activity %q", kind)
	}

	activity.Name = args.Rest()
	if activity.Name == "" {
		return data, errors.Wrap(ErrNoArgs, "missing activity text")
	}

	data.Status = string(status)
	data.Activities = []*discordgo.Activity{activity}
	return data, nil
}
