package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Context is handed to a command's run function.
type Context struct {
	Sess *discordgo.Session
	Msg  *discordgo.Message
	// Mentions are the users the command targets. The bot is left out when
	// it was mentioned as the prefix.
	Mentions []*discordgo.User
	Args     *Args
	Prefix   string
	Command  *Command
}

func (c *Context) Reply(text string) (*discordgo.Message, error) {
	return c.Sess.ChannelMessageSend(c.Msg.ChannelID, text)
}

func (c *Context) ReplyEmbed(e *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.Sess.ChannelMessageSendEmbed(c.Msg.ChannelID, e)
}

// IsPrivate reports whether the message was sent outside of a guild.
func (c *Context) IsPrivate() bool {
	return c.Msg.GuildID == ""
}

func (c *Context) GuildID() string {
	return c.Msg.GuildID
}

// AuthorName returns the name to show for the message author, preferring the
// guild nickname.
func (c *Context) AuthorName() string {
	if c.Msg.Member != nil && c.Msg.Member.Nick != "" {
		return c.Msg.Member.Nick
	}
	return c.Msg.Author.Username
}
