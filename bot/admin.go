package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flat/lupusregina/prefix"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

func newSetPrefixCommand(b *Bot) *Command {
	return &Command{
		Name:           "setprefix",
		Group:          "Admin",
		Description:    "Sets the prefix for the current guild.",
		Usage:          "<prefix>",
		Example:        "!",
		MinArgs:        1,
		GuildOnly:      true,
		OwnerPrivilege: true,
		Permissions:    discordgo.PermissionAdministrator,
		Run: func(c *Context) error {
			p, err := c.Args.Single()
			if err != nil {
				return err
			}
			gid, err := strconv.ParseUint(c.GuildID(), 10, 64)
			if err != nil {
				return errors.Wrap(err, "parse guild id")
			}

			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := b.prefixes.Set(ctx, gid, p); err != nil {
				if errors.Is(err, prefix.ErrInvalidPrefix) {
					_, _ = c.Reply(fmt.Sprintf("A prefix must be 1 to %v characters without spaces.", prefix.MaxLength))
				}
				return err
			}

			b.log.Info("prefix changed", zap.String("guild", c.GuildID()), zap.String("prefix", p), zap.String("by", c.Msg.Author.ID))
			_, err = c.Reply("Set prefix!")
			return err
		},
	}
}
