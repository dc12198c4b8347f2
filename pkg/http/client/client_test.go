package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/myzx/gohelper/pkg/arr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// echo reports what the server received as JSON.
func echo(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		out := map[string]any{
			"method":       r.Method,
			"query":        r.URL.RawQuery,
			"content_type": r.Header.Get("Content-Type"),
			"user_agent":   r.Header.Get("User-Agent"),
			"auth":         r.Header.Get("Authorization"),
			"trace":        r.Header.Get("X-Trace"),
		}

		switch {
		case strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/"):
			require.NoError(t, r.ParseMultipartForm(1<<20))
			out["form"] = r.MultipartForm.Value
			files := map[string]any{}
			for name, headers := range r.MultipartForm.File {
				f, err := headers[0].Open()
				require.NoError(t, err)
				data, _ := io.ReadAll(f)
				f.Close()
				files[name] = map[string]any{"filename": headers[0].Filename, "content": string(data)}
			}
			out["files"] = files
		case strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded"):
			require.NoError(t, r.ParseForm())
			out["form"] = r.PostForm
		default:
			out["body"] = string(body)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientVerbs(t *testing.T) {
	srv := echo(t)
	c := Default()
	ctx := context.Background()

	t.Run("get encodes query", func(t *testing.T) {
		resp, err := c.Get(ctx, srv.URL, map[string]any{"q": "go lang", "page": 2})
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Equal(t, "GET", resp.JSON("method", nil))
		assert.Equal(t, "page=2&q=go+lang", resp.JSON("query", nil))
		assert.Equal(t, "gohelper-http/1.0", resp.JSON("user_agent", nil))
	})

	t.Run("post encodes form", func(t *testing.T) {
		resp, err := c.Post(ctx, srv.URL, map[string]string{"name": "ada"})
		require.NoError(t, err)
		assert.Equal(t, "POST", resp.JSON("method", nil))
		assert.Equal(t, []any{"ada"}, resp.JSON("form.name", nil))
	})

	t.Run("put encodes nested form", func(t *testing.T) {
		resp, err := c.Put(ctx, srv.URL, map[string]any{"user": map[string]any{"id": 7}})
		require.NoError(t, err)
		assert.Equal(t, "PUT", resp.JSON("method", nil))
		assert.Equal(t, []any{"7"}, resp.JSON("form.user[id]", nil))
	})

	t.Run("post json", func(t *testing.T) {
		resp, err := c.PostJSON(ctx, srv.URL, map[string]any{"id": 1, "tags": []string{"a"}})
		require.NoError(t, err)
		assert.Equal(t, "POST", resp.JSON("method", nil))
		assert.Equal(t, "application/json", resp.JSON("content_type", nil))

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(resp.JSON("body", "").(string)), &sent))
		assert.Equal(t, map[string]any{"id": 1.0, "tags": []any{"a"}}, sent)
	})

	t.Run("ordered data keeps key order", func(t *testing.T) {
		data := arr.MapOf("zeta", 1, "alpha", arr.MapOf("y", "2", "x", "3"))

		resp, err := c.PostJSON(ctx, srv.URL, data)
		require.NoError(t, err)
		assert.Equal(t, `{"zeta":1,"alpha":{"y":"2","x":"3"}}`, resp.JSON("body", nil))

		resp, err = c.Get(ctx, srv.URL, data)
		require.NoError(t, err)
		query, err := url.ParseQuery(resp.JSON("query", "").(string))
		require.NoError(t, err)
		assert.Equal(t, url.Values{"zeta": {"1"}, "alpha[y]": {"2"}, "alpha[x]": {"3"}}, query)
	})

	t.Run("delete encodes query", func(t *testing.T) {
		resp, err := c.Delete(ctx, srv.URL, map[string]string{"id": "9"})
		require.NoError(t, err)
		assert.Equal(t, "DELETE", resp.JSON("method", nil))
		assert.Equal(t, "id=9", resp.JSON("query", nil))
	})

	t.Run("empty data is skipped", func(t *testing.T) {
		resp, err := c.Post(ctx, srv.URL, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "", resp.JSON("body", nil))
	})

	t.Run("unsupported data", func(t *testing.T) {
		_, err := c.Get(ctx, srv.URL, 42)
		assert.ErrorIs(t, err, ErrInvalidData)
	})
}

func TestClientUpload(t *testing.T) {
	srv := echo(t)
	c := Default()

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))

	resp, err := c.Upload(context.Background(), srv.URL, []Part{
		{Name: "title", Contents: "hello"},
		{Name: "doc", Path: path},
		{Name: "blob", Reader: strings.NewReader("in memory"), FileName: "blob.bin"},
	})
	require.NoError(t, err)

	assert.Equal(t, "POST", resp.JSON("method", nil))
	assert.Equal(t, []any{"hello"}, resp.JSON("form.title", nil))
	assert.Equal(t, "note.txt", resp.JSON("files.doc.filename", nil))
	assert.Equal(t, "from disk", resp.JSON("files.doc.content", nil))
	assert.Equal(t, "in memory", resp.JSON("files.blob.content", nil))

	_, err = c.Request(context.Background(), MethodUpload, srv.URL, map[string]string{"a": "b"})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestClientRequestOptions(t *testing.T) {
	srv := echo(t)
	c := Default()

	resp, err := c.Get(context.Background(), srv.URL, nil,
		WithHeader("X-Trace", "abc"),
		WithQuery("debug", "1"),
		WithBearerToken("tok"),
	)
	require.NoError(t, err)

	assert.Equal(t, "abc", resp.JSON("trace", nil))
	assert.Equal(t, "debug=1", resp.JSON("query", nil))
	assert.Equal(t, "Bearer tok", resp.JSON("auth", nil))
}

func TestClientDefaultHeaders(t *testing.T) {
	srv := echo(t)
	c := Default()

	c.SetHeader("X-Trace", "default")
	assert.Equal(t, "default", c.Headers()["X-Trace"])

	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "default", resp.JSON("trace", nil))

	c.RemoveHeader("X-Trace")
	assert.NotContains(t, c.Headers(), "X-Trace")
}

func TestClientErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	resp, err := Default().Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.True(t, resp.Failed())
	assert.False(t, resp.OK())
	assert.Equal(t, "not found", resp.JSON("error", nil))

	var reqErr *RequestError
	require.ErrorAs(t, resp.Err(), &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := Default().Get(context.Background(), url, nil)
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClientRetriesTransportErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.RetryWait = time.Millisecond
	cfg.RetryMaxWait = 5 * time.Millisecond

	t.Run("no retries by default", func(t *testing.T) {
		hits.Store(0)
		_, err := New(cfg).Get(context.Background(), srv.URL, nil)
		assert.Error(t, err)
	})

	t.Run("retry count from config", func(t *testing.T) {
		hits.Store(0)
		cfg := cfg
		cfg.RetryCount = 3

		resp, err := New(cfg).Get(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.String())
		assert.GreaterOrEqual(t, hits.Load(), int32(3))
	})
}

func TestClientRedirects(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch r.URL.Path {
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		case "/start":
			http.Redirect(w, r, "/end", http.StatusFound)
		default:
			w.Write([]byte("done"))
		}
	}))
	defer srv.Close()

	c := Default()

	resp, err := c.Get(context.Background(), srv.URL+"/start", nil)
	require.NoError(t, err)
	assert.Equal(t, "done", resp.String())
	assert.Equal(t, "/end", resp.EffectiveURL().Path)

	// The redirect limit error arrives with the last response, so it is
	// captured on the Response rather than returned.
	hits = 0
	resp, err = c.Get(context.Background(), srv.URL+"/loop", nil)
	require.NoError(t, err)
	assert.True(t, resp.Redirect())
	assert.ErrorContains(t, resp.Err(), "stopped after 5 redirects")
	assert.LessOrEqual(t, hits, 6)
}

func TestClientRateLimitHonoursContext(t *testing.T) {
	srv := echo(t)
	cfg := DefaultConfig()
	cfg.RateLimit = 0.001
	c := New(cfg)

	_, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, srv.URL, nil)
	assert.ErrorContains(t, err, "rate limit")
}

func TestClientMetricsAndLogger(t *testing.T) {
	srv := echo(t)
	reg := prometheus.NewRegistry()
	c := Default(WithMetrics(reg), WithLogger(zap.NewNop()))

	_, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	snap := c.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HELPER_HTTP_TIMEOUT", "3s")
	t.Setenv("HELPER_HTTP_MAX_REDIRECTS", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.MaxRedirects)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "gohelper-http/1.0", cfg.UserAgent)

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, c.Resty())
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := Default()

	path := filepath.Join(dir, "nested", "file.txt")
	resp, err := c.Download(context.Background(), srv.URL+"/file", path)
	require.NoError(t, err)
	assert.True(t, resp.Successful())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	missing := filepath.Join(dir, "missing.txt")
	resp, err = c.Download(context.Background(), srv.URL+"/missing", missing)
	require.NoError(t, err)
	assert.True(t, resp.ClientError())
	assert.NoFileExists(t, missing)
}
