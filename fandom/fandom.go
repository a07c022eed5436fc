package fandom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BaseURL is the Virtual YouTuber wiki.
const BaseURL = "https://virtualyoutuber.fandom.com"

var ErrNoResults = errors.New("no results")

type SearchResult struct {
	URL     string `json:"url"`
	NS      uint64 `json:"ns"`
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type searchResultSet struct {
	Batches      uint64          `json:"batches"`
	Items        []*SearchResult `json:"items"`
	Total        uint64          `json:"total"`
	CurrentBatch uint64          `json:"currentBatch"`
	Next         uint64          `json:"next"`
}

type Revision struct {
	ID        uint64 `json:"id"`
	User      string `json:"user"`
	UserID    uint64 `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

type Article struct {
	URL       string   `json:"url"`
	NS        uint64   `json:"ns"`
	Abstract  string   `json:"abstract"`
	Thumbnail string   `json:"thumbnail"`
	Revision  Revision `json:"revision"`
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Comments  uint64   `json:"comments"`
}

type articleResultSet struct {
	Items    map[string]*Article `json:"items"`
	Basepath string              `json:"basepath"`
}

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, httpClient *http.Client) *Client {
	if base == "" {
		base = BaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		http: httpClient,
	}
}

// Search returns the best matching article for query.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("limit", "1")
	params.Set("query", query)

	var res searchResultSet
	if err := c.get(ctx, "/api/v1/Search/List", params, &res); err != nil {
		return nil, err
	}
	if len(res.Items) == 0 || res.Items[0] == nil {
		return nil, errors.Wrapf(ErrNoResults, "no results for %v", query)
	}
	r := res.Items[0]
	r.URL = StripBackslashes(r.URL)
	return r, nil
}

// Details fetches the article with a 500 character abstract.
func (c *Client) Details(ctx context.Context, id uint64) (*Article, error) {
	sid := strconv.FormatUint(id, 10)
	params := url.Values{}
	params.Set("abstract", "500")
	params.Set("ids", sid)

	var res articleResultSet
	if err := c.get(ctx, "/api/v1/Articles/Details", params, &res); err != nil {
		return nil, err
	}
	a, ok := res.Items[sid]
	if !ok || a == nil {
		return nil, errors.Wrapf(ErrNoResults, "unable to get article with ID %v", id)
	}
	a.Thumbnail = StripBackslashes(a.Thumbnail)
	a.URL = StripBackslashes(a.URL)
	return a, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "wiki request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("wiki returned status %v", res.StatusCode)
	}
	return errors.Wrap(json.NewDecoder(res.Body).Decode(v), "failed to decode wiki response")
}

// StripBackslashes removes the escaping the wiki API leaves in URLs.
func StripBackslashes(u string) string {
	return strings.ReplaceAll(u, "\\", "")
}
