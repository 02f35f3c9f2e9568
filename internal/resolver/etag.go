package resolver

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// maxETagEntries bounds the conditional-request cache. The working set is
// the set of distinct repositories being resolved; when it overflows the
// cache resets rather than tracking recency.
const maxETagEntries = 4096

// etagEntry holds a cached GET response for one URL.
type etagEntry struct {
	etag   string
	status int
	header http.Header
	body   []byte
}

// etagTransport is an http.RoundTripper that replays cached bodies for
// 304 Not Modified responses. When a GET response carries an ETag header
// the body is cached; subsequent GETs to the same URL send If-None-Match,
// and a 304 answer is rewritten into the cached 200 without consuming
// API rate-limit quota.
type etagTransport struct {
	base http.RoundTripper

	mu      sync.Mutex
	entries map[string]etagEntry
}

func newETagTransport(base http.RoundTripper) *etagTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &etagTransport{
		base:    base,
		entries: make(map[string]etagEntry),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *etagTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, fmt.Errorf("round trip: %w", err)
		}

		return resp, nil
	}

	url := req.URL.String()

	cached, haveCached := t.lookup(url)
	if haveCached && req.Header.Get("If-None-Match") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("If-None-Match", cached.etag)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	if resp.StatusCode == http.StatusNotModified && haveCached {
		return t.replay(resp, cached), nil
	}

	if resp.StatusCode == http.StatusOK {
		if err := t.store(url, resp); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (t *etagTransport) lookup(url string) (etagEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[url]

	return entry, ok
}

// store caches the response body when the server tagged it, replacing the
// consumed body with an equivalent reader.
func (t *etagTransport) store(url string, resp *http.Response) error {
	etag := resp.Header.Get("ETag")
	if etag == "" {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()

	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if closeErr != nil {
		return fmt.Errorf("close response body: %w", closeErr)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= maxETagEntries {
		t.entries = make(map[string]etagEntry)
	}

	t.entries[url] = etagEntry{
		etag:   etag,
		status: resp.StatusCode,
		header: resp.Header.Clone(),
		body:   body,
	}

	return nil
}

// replay rewrites a 304 into the cached 200 response, keeping the 304's
// rate-limit headers visible to the caller's transport stack.
func (t *etagTransport) replay(resp *http.Response, cached etagEntry) *http.Response {
	if resp.Body != nil {
		_ = resp.Body.Close()
	}

	header := cached.header.Clone()
	for k, v := range resp.Header {
		header[k] = v
	}

	return &http.Response{
		Status:        http.StatusText(cached.status),
		StatusCode:    cached.status,
		Proto:         resp.Proto,
		ProtoMajor:    resp.ProtoMajor,
		ProtoMinor:    resp.ProtoMinor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cached.body)),
		ContentLength: int64(len(cached.body)),
		Request:       resp.Request,
	}
}
