package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flat/lupusregina/fun"
)

func newEightBallCommand(b *Bot) *Command {
	return &Command{
		Name:        "eightball",
		Aliases:     []string{"8ball"},
		Group:       "Fun",
		Description: "Ask the magic eight ball your question and receive your fortune.",
		Usage:       "<question>",
		Example:     "Will it rain today?",
		MinArgs:     1,
		Run: func(c *Context) error {
			answer, i := fun.EightBall(globalRand{})
			_, err := c.ReplyEmbed(eightBallEmbed(c.AuthorName(), c.Msg.Author.AvatarURL(""), c.Args.Rest(), answer, i))
			return err
		},
	}
}

func eightBallEmbed(author, icon, question, answer string, i int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:       fun.EightBallColor(i),
		Description: question,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    author,
			IconURL: icon,
		},
	}
	return AddEmbedField(embed, "\U0001F3B1Eightball\U0001F3B1", answer, false)
}

func newDarkSoulsCommand(b *Bot) *Command {
	return &Command{
		Name:        "darksouls",
		Aliases:     []string{"ds"},
		Group:       "Fun",
		Description: "Display a randomly generated Dark Souls message.",
		Run: func(c *Context) error {
			_, err := c.Reply(fun.DarkSouls(globalRand{}))
			return err
		},
	}
}

func newDarkSouls3Command(b *Bot) *Command {
	return &Command{
		Name:        "darksouls3",
		Aliases:     []string{"ds3"},
		Group:       "Fun",
		Description: "Display a randomly generated Dark Souls 3 message.",
		Run: func(c *Context) error {
			_, err := c.Reply(fun.DarkSouls3(globalRand{}))
			return err
		},
	}
}

func newDDateCommand(b *Bot) *Command {
	return &Command{
		Name:        "ddate",
		Aliases:     []string{"dd"},
		Group:       "Fun",
		Description: "Display the current date of the Discordian/Erisian Calendar.",
		Run: func(c *Context) error {
			_, err := c.Reply(fun.ToDDate(time.Now()).String())
			return err
		},
	}
}
