package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flat/lupusregina/anilist"
	"github.com/flat/lupusregina/fandom"
	"github.com/flat/lupusregina/kvstore"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultAniListInterval = time.Second
	defaultLookupTTL       = time.Hour
	lookupTimeout          = 10 * time.Second
)

// vtuberEntry is what the lookup cache keeps for a wiki search.
type vtuberEntry struct {
	URL     string
	Article fandom.Article
}

func newAnimeCommand(b *Bot) *Command {
	return &Command{
		Name:        "anime",
		Group:       "Weeb",
		Description: "Shows information about an anime from AniList.",
		Usage:       "<anime title>",
		Example:     "Tate no Yuusha no Nariagari",
		MinArgs:     1,
		Bucket:      "anilist",
		Run: func(c *Context) error {
			return b.mediaLookup(c, anilist.Anime)
		},
	}
}

func newMangaCommand(b *Bot) *Command {
	return &Command{
		Name:        "manga",
		Group:       "Weeb",
		Description: "Shows information about a manga from AniList.",
		Usage:       "<manga title>",
		Example:     "Tate no Yuusha no Nariagari",
		MinArgs:     1,
		Bucket:      "anilist",
		Run: func(c *Context) error {
			return b.mediaLookup(c, anilist.Manga)
		},
	}
}

func (b *Bot) mediaLookup(c *Context, typ anilist.MediaType) error {
	title := c.Args.Rest()
	key := lookupKey("anilist", string(typ), title)

	var media anilist.Media
	if !b.cached(key, &media) {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		var (
			m   *anilist.Media
			err error
		)
		if typ == anilist.Manga {
			m, err = b.anilist.SearchManga(ctx, title)
		} else {
			m, err = b.anilist.SearchAnime(ctx, title)
		}
		if errors.Is(err, anilist.ErrNoResults) {
			_, _ = c.Reply(fmt.Sprintf("Nothing found for %v.", title))
		}
		if err != nil {
			return err
		}
		media = *m
		b.remember(key, media)
	}

	_, err := c.ReplyEmbed(mediaEmbed(&media))
	return err
}

func mediaEmbed(m *anilist.Media) *discordgo.MessageEmbed {
	description := "No description available."
	if m.Description != "" {
		description = anilist.FormatDescription(m.Description)
	}

	embed := &discordgo.MessageEmbed{
		Title:       m.Title.String(),
		URL:         m.URL(),
		Color:       int(Blue),
		Description: description,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Data provided by Anilist.co",
			IconURL: anilist.Icon,
		},
	}
	if m.CoverImage.Large != "" {
		SetEmbedThumbnail(embed, m.CoverImage.Large)
	}
	if m.Status != "" {
		AddEmbedField(embed, "Status", m.Status, true)
	}
	if m.Type == anilist.Manga {
		if m.Chapters > 0 {
			AddEmbedField(embed, "Chapters", fmt.Sprint(m.Chapters), true)
		}
	} else if m.Episodes > 0 {
		AddEmbedField(embed, "Episodes", fmt.Sprint(m.Episodes), true)
	}
	if len(m.Genres) > 0 {
		AddEmbedField(embed, "Genres", strings.Join(m.Genres, ", "), true)
	}
	if m.AverageScore > 0 {
		AddEmbedField(embed, "Average Score", fmt.Sprintf("%v%%", m.AverageScore), true)
	}
	if m.Season != "" && m.Type != anilist.Manga {
		AddEmbedField(embed, "Season", m.Season, true)
	}
	if !m.StartDate.IsZero() {
		AddEmbedField(embed, "Start Date", m.StartDate.String(), true)
	}
	if !m.EndDate.IsZero() {
		AddEmbedField(embed, "End Date", m.EndDate.String(), true)
	}
	return embed
}

func newVTuberCommand(b *Bot) *Command {
	return &Command{
		Name:        "vtuber",
		Group:       "Weeb",
		Description: "Shows information about a Virtual YouTuber.",
		Usage:       "<name>",
		Example:     "Natsuiro Matsuri",
		MinArgs:     1,
		Run: func(c *Context) error {
			query := c.Args.Rest()
			key := lookupKey("fandom", "vtuber", query)

			var entry vtuberEntry
			if !b.cached(key, &entry) {
				ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
				defer cancel()

				res, err := b.fandom.Search(ctx, query)
				if errors.Is(err, fandom.ErrNoResults) {
					_, _ = c.Reply(fmt.Sprintf("Nothing found for %v.", query))
				}
				if err != nil {
					return err
				}
				article, err := b.fandom.Details(ctx, res.ID)
				if err != nil {
					return err
				}
				entry = vtuberEntry{URL: res.URL, Article: *article}
				b.remember(key, entry)
			}

			_, err := c.ReplyEmbed(vtuberEmbed(&entry))
			return err
		},
	}
}

func vtuberEmbed(e *vtuberEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Article.Title,
		URL:         e.URL,
		Description: e.Article.Abstract,
	}
	if e.Article.Thumbnail != "" {
		SetEmbedThumbnail(embed, e.Article.Thumbnail)
	}
	return embed
}

func lookupKey(parts ...string) string {
	last := len(parts) - 1
	parts[last] = strings.ToLower(strings.TrimSpace(parts[last]))
	return strings.Join(parts, ":")
}

// cached fills v from the lookup cache. Misses and store errors both fall
// through to a fresh lookup.
func (b *Bot) cached(key string, v interface{}) bool {
	if b.store == nil {
		return false
	}
	err := b.store.Get(key, v)
	if err == nil {
		return true
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		b.log.Warn("failed to read lookup cache", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (b *Bot) remember(key string, v interface{}) {
	if b.store == nil {
		return
	}
	ttl := b.config.LookupTTL
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	if err := b.store.Set(key, v, ttl); err != nil {
		b.log.Warn("failed to write lookup cache", zap.String("key", key), zap.Error(err))
	}
}
