package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxSlowmode = 21600
	banPageSize = 1000
)

func newBanCommand(b *Bot) *Command {
	return &Command{
		Name:        "ban",
		Group:       "Moderation",
		Description: "Bans the mentioned user.",
		Usage:       "@user",
		GuildOnly:   true,
		Permissions: discordgo.PermissionBanMembers,
		Run: func(c *Context) error {
			if len(c.Mentions) == 0 {
				return errors.New("no mentioned target")
			}
			target := c.Mentions[0]
			if err := c.Sess.GuildBanCreate(c.GuildID(), target.ID, 0); err != nil {
				return errors.Wrapf(err, "ban %v", target.ID)
			}
			b.log.Info("banned user", zap.String("guild", c.GuildID()), zap.String("user", target.ID), zap.String("by", c.Msg.Author.ID))
			return nil
		},
	}
}

func newUnbanCommand(b *Bot) *Command {
	return &Command{
		Name:        "unban",
		Group:       "Moderation",
		Description: "Unbans every banned user with the given tag.",
		Usage:       "<user tag>",
		Example:     "someone#1234",
		MinArgs:     1,
		GuildOnly:   true,
		Permissions: discordgo.PermissionBanMembers,
		Run: func(c *Context) error {
			tag := c.Args.Rest()
			after := ""
			for {
				bans, err := c.Sess.GuildBans(c.GuildID(), banPageSize, "", after)
				if err != nil {
					return errors.Wrap(err, "fetch bans")
				}
				for _, ban := range matchBans(bans, tag) {
					if err := c.Sess.GuildBanDelete(c.GuildID(), ban.User.ID); err != nil {
						return errors.Wrapf(err, "unban %v", ban.User.ID)
					}
					b.log.Info("unbanned user", zap.String("guild", c.GuildID()), zap.String("user", ban.User.ID), zap.String("by", c.Msg.Author.ID))
				}
				if len(bans) < banPageSize {
					return nil
				}
				after = bans[len(bans)-1].User.ID
			}
		},
	}
}

func matchBans(bans []*discordgo.GuildBan, tag string) []*discordgo.GuildBan {
	var out []*discordgo.GuildBan
	for _, ban := range bans {
		if ban.User != nil && ban.User.String() == tag {
			out = append(out, ban)
		}
	}
	return out
}

func newSetSlowmodeCommand(b *Bot) *Command {
	return &Command{
		Name:        "setslowmode",
		Group:       "Moderation",
		Description: "Sets the slowmode of the current channel, in seconds.",
		Usage:       "<seconds>",
		Example:     "30",
		MinArgs:     1,
		GuildOnly:   true,
		Permissions: discordgo.PermissionManageChannels,
		Run: func(c *Context) error {
			n, err := c.Args.SingleUint()
			if err != nil {
				return err
			}
			if n > maxSlowmode {
				return errors.Errorf("slowmode is at most %v seconds", maxSlowmode)
			}
			secs := int(n)
			_, err = c.Sess.ChannelEdit(c.Msg.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &secs})
			return err
		},
	}
}
