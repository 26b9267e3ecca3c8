package network

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/agenttools/tool"
)

func TestLookupValidation(t *testing.T) {
	_, err := Lookup(context.Background(), "", "A")
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	_, err = Lookup(context.Background(), "example.com", "SRV")
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestLookupLocalhost(t *testing.T) {
	res, err := Lookup(context.Background(), "localhost", "a")
	if err != nil {
		t.Skipf("resolver unavailable: %v", err)
	}
	assert.Equal(t, "A", res.Type)
	assert.True(t, res.Found)
	assert.Contains(t, res.Records, "127.0.0.1")
}

func TestCheckPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	t.Run("open", func(t *testing.T) {
		res, err := CheckPort(context.Background(), "127.0.0.1", port, time.Second)
		require.NoError(t, err)
		assert.True(t, res.Open)
		assert.Empty(t, res.Reason)
	})

	t.Run("closed is not an error", func(t *testing.T) {
		closed := port - 1
		if closed < 1 {
			closed = port + 1
		}
		res, err := CheckPort(context.Background(), "127.0.0.1", closed, time.Second)
		require.NoError(t, err)
		if !res.Open {
			assert.NotEmpty(t, res.Reason)
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := CheckPort(context.Background(), "", 80, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = CheckPort(context.Background(), "localhost", 0, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = CheckPort(context.Background(), "localhost", 70000, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestParseURL(t *testing.T) {
	parts, err := ParseURL("https://ada@example.com:8443/docs/intro?q=go&q=tools#top")
	require.NoError(t, err)
	assert.Equal(t, "https", parts.Scheme)
	assert.Equal(t, "example.com", parts.Host)
	assert.Equal(t, 8443, parts.Port)
	assert.Equal(t, "/docs/intro", parts.Path)
	assert.Equal(t, []string{"go", "tools"}, parts.Query["q"])
	assert.Equal(t, "top", parts.Fragment)
	assert.Equal(t, "ada", parts.User)

	t.Run("no port", func(t *testing.T) {
		parts, err := ParseURL("http://example.com/x")
		require.NoError(t, err)
		assert.Zero(t, parts.Port)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"", "   ", "/relative/only"} {
			_, err := ParseURL(bad)
			assert.ErrorIs(t, err, tool.ErrInvalidInput, "input %q", bad)
		}
	})
}

func TestInterfaces(t *testing.T) {
	res, err := Interfaces()
	require.NoError(t, err)
	assert.Equal(t, len(res.Interfaces), res.Count)

	var hasLoopback bool
	for _, iface := range res.Interfaces {
		if iface.Loopback {
			hasLoopback = true
		}
	}
	assert.True(t, hasLoopback, "expected a loopback interface")
}

func TestPing(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	res, err := Ping(context.Background(), srv.URL, "", 3, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "HEAD", res.Method)
	assert.Equal(t, 3, res.Count)
	assert.Zero(t, res.Failures)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"HEAD", "HEAD", "HEAD"}, methods)
	assert.LessOrEqual(t, res.MinMS, res.AvgMS)
	assert.LessOrEqual(t, res.AvgMS, res.MaxMS)
	assert.GreaterOrEqual(t, res.StddevMS, 0.0)

	t.Run("failures counted", func(t *testing.T) {
		srv.Close()
		res, err := Ping(context.Background(), srv.URL, "GET", 2, 200*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Failures)
		assert.Zero(t, res.AvgMS)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := Ping(context.Background(), "ftp://x", "", 1, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = Ping(context.Background(), "http://example.com", "POST", 1, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = Ping(context.Background(), "http://example.com", "", 100, 0)
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestNetworkTools(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 5)
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		assert.Equal(t, Category, d.Category())
		assert.True(t, d.ReadOnly())
		names = append(names, d.Name())
	}
	assert.Equal(t, "dns_lookup port_check url_parse net_interfaces http_ping", strings.Join(names, " "))

	out, err := defs[2].Call(context.Background(), `{"url": "https://example.com/a"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"scheme":"https"`)
}
