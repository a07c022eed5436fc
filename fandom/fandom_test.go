package fandom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client())
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/Search/List", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "Natsuiro Matsuri", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"batches":1,"items":[{"url":"https:\\/\\/wiki\\/Matsuri","ns":0,"id":42,"title":"Natsuiro Matsuri","snippet":"..."}],"total":1,"currentBatch":1,"next":0}`))
	})

	res, err := c.Search(context.Background(), "Natsuiro Matsuri")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res.ID)
	assert.Equal(t, "https://wiki/Matsuri", res.URL)
}

func TestSearchEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.Search(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/Articles/Details", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("abstract"))
		assert.Equal(t, "42", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{"items":{"42":{"id":42,"title":"Natsuiro Matsuri","abstract":"A hololive VTuber.","thumbnail":"https:\\/\\/img\\/t.png","revision":{"id":1,"user":"u","user_id":2,"timestamp":"0"}}},"basepath":"https://wiki"}`))
	})

	a, err := c.Details(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Natsuiro Matsuri", a.Title)
	assert.Equal(t, "A hololive VTuber.", a.Abstract)
	assert.Equal(t, "https://img/t.png", a.Thumbnail)
}

func TestDetailsMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":{}}`))
	})

	_, err := c.Details(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestStripBackslashes(t *testing.T) {
	assert.Equal(t, "https://a/b", StripBackslashes(`https:\/\/a\/b`))
}
