package anilist

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"
	"github.com/pkg/errors"
)

const (
	Endpoint  = "https://graphql.anilist.co"
	Icon      = "https://anilist.co/img/icons/apple-touch-icon-152x152.png"
	AnimePath = "https://anilist.co/anime/"
	MangaPath = "https://anilist.co/manga/"
)

var ErrNoResults = errors.New("no results")

type MediaType string

const (
	Anime MediaType = "ANIME"
	Manga MediaType = "MANGA"
)

const mediaQuery = `
query ($title: String, $type: MediaType) {
	Page(perPage: 1) {
		media(search: $title, type: $type) {
			id
			title { romaji native }
			coverImage { large }
			description
			status
			episodes
			chapters
			genres
			averageScore
			season
			startDate { year month day }
			endDate { year month day }
		}
	}
}
`

type Title struct {
	Romaji string `json:"romaji"`
	Native string `json:"native"`
}

// String joins the romaji and native titles, whichever exist.
func (t Title) String() string {
	switch {
	case t.Romaji != "" && t.Native != "":
		return t.Romaji + " | " + t.Native
	case t.Romaji != "":
		return t.Romaji
	case t.Native != "":
		return t.Native
	}
	return "Title unavailable."
}

type CoverImage struct {
	Large string `json:"large"`
}

type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d FuzzyDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d FuzzyDate) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

type Media struct {
	ID           int        `json:"id"`
	Type         MediaType  `json:"-"`
	Title        Title      `json:"title"`
	CoverImage   CoverImage `json:"coverImage"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Episodes     int        `json:"episodes"`
	Chapters     int        `json:"chapters"`
	Genres       []string   `json:"genres"`
	AverageScore int        `json:"averageScore"`
	Season       string     `json:"season"`
	StartDate    FuzzyDate  `json:"startDate"`
	EndDate      FuzzyDate  `json:"endDate"`
}

// URL links to the media's AniList page.
func (m *Media) URL() string {
	if m.Type == Manga {
		return fmt.Sprintf("%v%v", MangaPath, m.ID)
	}
	return fmt.Sprintf("%v%v", AnimePath, m.ID)
}

type pageResponse struct {
	Page struct {
		Media []*Media `json:"media"`
	} `json:"Page"`
}

type Client struct {
	gql *graphql.Client
}

// NewClient creates an AniList client. An empty endpoint uses Endpoint and a
// nil httpClient uses http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = Endpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		gql: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
	}
}

func (c *Client) SearchAnime(ctx context.Context, title string) (*Media, error) {
	return c.search(ctx, title, Anime)
}

func (c *Client) SearchManga(ctx context.Context, title string) (*Media, error) {
	return c.search(ctx, title, Manga)
}

func (c *Client) search(ctx context.Context, title string, typ MediaType) (*Media, error) {
	req := graphql.NewRequest(mediaQuery)
	req.Var("title", title)
	req.Var("type", typ)

	var resp pageResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, errors.Wrapf(err, "anilist query for %q failed", title)
	}
	if len(resp.Page.Media) == 0 || resp.Page.Media[0] == nil {
		return nil, errors.Wrapf(ErrNoResults, "%v %q", strings.ToLower(string(typ)), title)
	}
	m := resp.Page.Media[0]
	m.Type = typ
	return m, nil
}

var descReplacer = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"</br>", "\n",
	"</ br>", "\n",
	"<i>", "*",
	"</i>", "*",
	"<b>", "**",
	"</b>", "**",
	"&rsquo;", "'",
	"&hellip;", "…",
)

// FormatDescription turns AniList's HTML descriptions into Discord markdown.
func FormatDescription(desc string) string {
	return descReplacer.Replace(desc)
}
