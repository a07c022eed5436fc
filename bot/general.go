package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const invitePermissions = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionAddReactions |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionUseExternalEmojis |
	discordgo.PermissionChangeNickname

func newAboutCommand(b *Bot) *Command {
	return &Command{
		Name:        "about",
		Group:       "General",
		Description: "Shows information about the bot.",
		Run: func(c *Context) error {
			me := c.Sess.State.User
			if me == nil {
				return errors.New("bot user is not cached yet")
			}
			embed := &discordgo.MessageEmbed{
				Title:       Name,
				URL:         inviteURL(me.ID, invitePermissions),
				Color:       int(Pink),
				Description: "A battle maid for the Great Tomb of Nazarick",
				Author: &discordgo.MessageEmbedAuthor{
					Name:    Name,
					IconURL: me.AvatarURL(""),
				},
			}
			AddEmbedField(embed, "Authors", Authors, false)
			AddEmbedField(embed, "Source Code", SourceURL, false)
			_, err := c.ReplyEmbed(embed)
			return err
		},
	}
}

func newAvatarCommand(b *Bot) *Command {
	return &Command{
		Name:        "avatar",
		Group:       "General",
		Description: "Shows the avatar for the user or specified user.",
		Usage:       "[@user | name]",
		Run: func(c *Context) error {
			user := c.Msg.Author
			switch {
			case len(c.Mentions) > 0:
				user = c.Mentions[0]
			case !c.Args.Empty() && !c.IsPrivate():
				if m, err := b.searchMember(c.GuildID(), c.Args.Rest()); err == nil {
					user = m.User
				} else {
					b.log.Debug("member search failed, using author", zap.Error(err))
				}
			}
			_, err := c.ReplyEmbed(&discordgo.MessageEmbed{
				Image: &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
			})
			return err
		},
	}
}

func newUserInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "userinfo",
		Group:       "General",
		Description: "Shows various information about a user.",
		Usage:       "[@user | name]",
		GuildOnly:   true,
		Run: func(c *Context) error {
			var (
				member *discordgo.Member
				err    error
			)
			switch {
			case len(c.Mentions) > 0:
				member, err = b.member(c.Sess, c.GuildID(), c.Mentions[0].ID)
			case c.Args.Empty():
				member, err = b.member(c.Sess, c.GuildID(), c.Msg.Author.ID)
			default:
				member, err = b.searchMember(c.GuildID(), c.Args.Rest())
			}
			if err != nil {
				return err
			}
			_, err = c.ReplyEmbed(userInfoEmbed(member))
			return err
		},
	}
}

func userInfoEmbed(m *discordgo.Member) *discordgo.MessageEmbed {
	nick := m.Nick
	if nick == "" {
		nick = "None"
	}
	joined := "Unavailable"
	if !m.JoinedAt.IsZero() {
		joined = m.JoinedAt.UTC().Format(time.RFC1123)
	}
	created := "Unavailable"
	if t, err := ParseSnowflake(m.User.ID); err == nil {
		created = t.UTC().Format(time.RFC1123)
	}

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    m.User.Username,
			IconURL: m.User.AvatarURL(""),
		},
	}
	AddEmbedField(embed, "Discriminator", "#"+m.User.Discriminator, true)
	AddEmbedField(embed, "User ID", m.User.ID, true)
	AddEmbedField(embed, "Nickname", nick, true)
	AddEmbedField(embed, "User Created", created, true)
	AddEmbedField(embed, "Joined Server", joined, true)
	return embed
}

func newGuildInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "guildinfo",
		Group:       "General",
		Description: "Shows various information about the guild.",
		GuildOnly:   true,
		Run: func(c *Context) error {
			g, err := b.disc.Guild(c.GuildID())
			if err != nil {
				return errors.Wrap(err, "guild is not cached")
			}
			_, err = c.ReplyEmbed(guildInfoEmbed(g))
			return err
		},
	}
}

func guildInfoEmbed(g *discordgo.Guild) *discordgo.MessageEmbed {
	features := make([]string, 0, len(g.Features))
	for _, f := range g.Features {
		features = append(features, string(f))
	}
	sort.Strings(features)
	featureList := "None"
	if len(features) > 0 {
		featureList = strings.Join(features, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    g.Name,
			IconURL: g.IconURL(""),
		},
	}
	AddEmbedField(embed, "Guild ID", g.ID, true)
	AddEmbedField(embed, "Members", fmt.Sprint(g.MemberCount), true)
	AddEmbedField(embed, "Features", featureList, true)
	AddEmbedField(embed, "Nitro Boost Level", fmt.Sprint(int(g.PremiumTier)), true)
	AddEmbedField(embed, "Nitro Boosts", fmt.Sprint(g.PremiumSubscriptionCount), true)
	if g.Splash != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: discordgo.EndpointGuildSplash(g.ID, g.Splash)}
	}
	if t, err := ParseSnowflake(g.ID); err == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Guild created at " + t.UTC().Format(time.RFC1123)}
	}
	return embed
}

func newPingCommand(b *Bot) *Command {
	return &Command{
		Name:        "ping",
		Group:       "General",
		Description: "Responds with the current latency to Discord.",
		Run: func(c *Context) error {
			start := time.Now()
			msg, err := c.Reply("Ping!")
			if err != nil {
				return err
			}
			rest := time.Since(start)
			_, err = c.Sess.ChannelMessageEdit(msg.ChannelID, msg.ID,
				fmt.Sprintf("Rest API: %vms\nShard Latency: %vms", rest.Milliseconds(), c.Sess.HeartbeatLatency().Milliseconds()))
			return err
		},
	}
}

func newHelpCommand(b *Bot) *Command {
	return &Command{
		Name:        "help",
		Group:       "General",
		Description: "Lists the commands, or shows details for one.",
		Usage:       "[command]",
		Example:     "eightball",
		Run: func(c *Context) error {
			if c.Args.Empty() {
				_, err := c.ReplyEmbed(helpEmbed(b.router.Commands(), c.Prefix))
				return err
			}
			name, _ := c.Args.Single()
			cmd := b.router.Find(name)
			if cmd == nil {
				_, err := c.Reply(fmt.Sprintf("No command called %v.", name))
				return err
			}
			_, err := c.ReplyEmbed(commandHelpEmbed(cmd, c.Prefix))
			return err
		},
	}
}

// helpEmbed lists command names per group, groups in order of first
// registration.
func helpEmbed(cmds []*Command, prefix string) *discordgo.MessageEmbed {
	var order []string
	groups := make(map[string][]string)
	for _, cmd := range cmds {
		if _, ok := groups[cmd.Group]; !ok {
			order = append(order, cmd.Group)
		}
		groups[cmd.Group] = append(groups[cmd.Group], "`"+cmd.Name+"`")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Color:       int(Blue),
		Description: fmt.Sprintf("Use `%vhelp <command>` for details on a command.", prefix),
	}
	for _, g := range order {
		name := g
		if name == "" {
			name = "Other"
		}
		AddEmbedField(embed, name, strings.Join(groups[g], " "), false)
	}
	return embed
}

func commandHelpEmbed(cmd *Command, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       cmd.Name,
		Color:       int(Blue),
		Description: cmd.Description,
	}
	if len(cmd.Aliases) > 0 {
		AddEmbedField(embed, "Aliases", strings.Join(cmd.Aliases, ", "), false)
	}
	usage := prefix + cmd.Name
	if cmd.Usage != "" {
		usage += " " + cmd.Usage
	}
	AddEmbedField(embed, "Usage", "`"+usage+"`", false)
	if cmd.Example != "" {
		AddEmbedField(embed, "Example", fmt.Sprintf("`%v%v %v`", prefix, cmd.Name, cmd.Example), false)
	}
	if cmd.GuildOnly {
		AddEmbedField(embed, "Guild only", "Yes", true)
	}
	return embed
}

func (b *Bot) member(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	if m, err := b.disc.Member(guildID, userID); err == nil {
		return m, nil
	}
	m, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch member")
	}
	return m, nil
}

func (b *Bot) searchMember(guildID, name string) (*discordgo.Member, error) {
	g, err := b.disc.Guild(guildID)
	if err != nil {
		return nil, errors.Wrap(err, "guild is not cached")
	}
	m := findMemberByPrefix(g.Members, name)
	if m == nil {
		return nil, errors.Errorf("could not find member %v", name)
	}
	return m, nil
}
