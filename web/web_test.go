package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/agenttools/tool"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Sample   Page </title>
  <meta name="description" content="A page for tests.">
  <link rel="canonical" href="https://example.com/sample">
  <meta property="og:title" content="Sample">
  <meta property="og:type" content="article">
</head>
<body>
  <h1>Heading</h1>
  <p>First paragraph with <b>bold</b> text.</p>
  <p>Second paragraph.</p>
  <a href="/relative">Relative</a>
  <a href="https://other.example.com/abs">Absolute</a>
  <a href="/relative">Duplicate</a>
  <a href="#fragment">Fragment only</a>
  <a href="mailto:x@example.com">Mail</a>
</body>
</html>`

func pageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(samplePage))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("just plain text"))
		case "/echo":
			w.Header().Set("X-Echo-Method", r.Method)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(r.Header.Get("X-Probe")))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckURL(t *testing.T) {
	for _, bad := range []string{"", "   ", "ftp://example.com/x", "not a url at all", "http://"} {
		_, err := checkURL(bad)
		assert.ErrorIs(t, err, tool.ErrInvalidInput, "input %q", bad)
	}
	u, err := checkURL("https://example.com/path?q=1")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)
}

func TestFetch(t *testing.T) {
	srv := pageServer(t)

	t.Run("html to text", func(t *testing.T) {
		res, err := Fetch(context.Background(), srv.URL+"/", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.ContentType, "text/html")
		assert.Contains(t, res.Text, "First paragraph with bold text.")
		assert.NotContains(t, res.Text, "<p>")
		assert.NotContains(t, res.Text, "<b>")
	})

	t.Run("plain body untouched", func(t *testing.T) {
		res, err := Fetch(context.Background(), srv.URL+"/plain", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "just plain text", res.Text)
	})

	t.Run("size cap sets truncated", func(t *testing.T) {
		res, err := Fetch(context.Background(), srv.URL+"/plain", 0, 4)
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.Equal(t, "just", res.Text)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := Fetch(context.Background(), "ftp://nope", 0, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestRequest(t *testing.T) {
	srv := pageServer(t)

	res, err := Request(context.Background(), srv.URL+"/echo", RequestOptions{
		Method:  "post",
		Headers: map[string]string{"X-Probe": "pong"},
		Body:    "payload",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "POST", res.Headers["X-Echo-Method"])
	assert.Equal(t, "pong", res.Body)
	assert.GreaterOrEqual(t, res.ElapsedMS, int64(0))

	_, err = Request(context.Background(), srv.URL, RequestOptions{Method: "TRACE"})
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestLinks(t *testing.T) {
	srv := pageServer(t)

	res, err := Links(context.Background(), srv.URL+"/", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count, "fragment, mailto and duplicate anchors are dropped")
	assert.Equal(t, srv.URL+"/relative", res.Links[0].URL)
	assert.Equal(t, "Relative", res.Links[0].Text)
	assert.Equal(t, "https://other.example.com/abs", res.Links[1].URL)

	t.Run("cap sets truncated", func(t *testing.T) {
		res, err := Links(context.Background(), srv.URL+"/", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.True(t, res.Truncated)
	})

	t.Run("error status", func(t *testing.T) {
		_, err := Links(context.Background(), srv.URL+"/missing", 0, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestMetadata(t *testing.T) {
	srv := pageServer(t)

	res, err := Metadata(context.Background(), srv.URL+"/", 0)
	require.NoError(t, err)
	assert.Equal(t, "Sample Page", res.Title)
	assert.Equal(t, "A page for tests.", res.Description)
	assert.Equal(t, "https://example.com/sample", res.Canonical)
	require.NotNil(t, res.OpenGraph)
	assert.Equal(t, "Sample", res.OpenGraph["title"])
	assert.Equal(t, "article", res.OpenGraph["type"])
}

func TestHTMLToText(t *testing.T) {
	text := HTMLToText("<p>one</p><p>two&nbsp;&amp; three</p><br>four")
	assert.Contains(t, text, "one")
	assert.Contains(t, text, "two")
	assert.Contains(t, text, "& three")
	assert.NotContains(t, text, "<p>")
	assert.False(t, strings.Contains(text, "\n\n\n"), "blank-line runs must collapse")
}

func TestWebTools(t *testing.T) {
	srv := pageServer(t)

	defs := Tools()
	require.Len(t, defs, 4)
	byName := map[string]*tool.Definition{}
	for _, d := range defs {
		assert.Equal(t, Category, d.Category())
		assert.True(t, d.ReadOnly())
		byName[d.Name()] = d
	}

	out, err := byName["web_fetch"].Call(context.Background(), `{"url": "`+srv.URL+`/plain"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "just plain text")
}
