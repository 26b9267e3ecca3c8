package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/agenttools/tool"
)

const (
	defaultTimeout  = 30 * time.Second
	maxTimeout      = 5 * time.Minute
	defaultBodyCap  = 2 << 20 // 2 MiB
	defaultMaxLinks = 200
)

// FetchResult is a fetched page reduced to plain text.
type FetchResult struct {
	URL         string `json:"url"`
	FinalURL    string `json:"final_url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Text        string `json:"text"`
	Truncated   bool   `json:"truncated,omitempty"`
}

// RequestOptions shapes one HTTP request.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    string
	Timeout time.Duration
}

// RequestResult is the raw outcome of one HTTP request.
type RequestResult struct {
	URL        string            `json:"url"`
	Status     string            `json:"status"`
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	ElapsedMS  int64             `json:"elapsed_ms"`
	Truncated  bool              `json:"truncated,omitempty"`
}

// Link is one extracted anchor.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

// LinksResult lists the anchors of a page.
type LinksResult struct {
	URL       string `json:"url"`
	Links     []Link `json:"links"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated,omitempty"`
}

// MetadataResult is a page's head metadata.
type MetadataResult struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Canonical   string            `json:"canonical,omitempty"`
	OpenGraph   map[string]string `json:"open_graph,omitempty"`
}

// checkURL validates that raw is an absolute http or https URL.
func checkURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, tool.Invalidf("url", "must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, tool.Invalidf("url", "not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, tool.Invalidf("url", "scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, tool.Invalidf("url", "missing host")
	}
	return u, nil
}

func clampTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	if d > maxTimeout {
		return maxTimeout
	}
	return d
}

// Fetch GETs a URL and returns its body as plain text. HTML responses are
// stripped of markup; anything else is returned as-is up to the cap.
func Fetch(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int) (*FetchResult, error) {
	if _, err := checkURL(rawURL); err != nil {
		return nil, err
	}
	if maxBytes <= 0 {
		maxBytes = defaultBodyCap
	}

	ctx, cancel := context.WithTimeout(ctx, clampTimeout(timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, truncated, err := readCapped(resp.Body, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	text := string(body)
	if strings.Contains(contentType, "text/html") {
		text = HTMLToText(text)
	}
	return &FetchResult{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Text:        text,
		Truncated:   truncated,
	}, nil
}

const userAgent = "agenttools/1.0 (+https://github.com/smallnest/agenttools)"

// Request performs one HTTP request and returns status, headers and body.
// No retries, no redirect suppression: the default client's behavior.
func Request(ctx context.Context, rawURL string, opts RequestOptions) (*RequestResult, error) {
	if _, err := checkURL(rawURL); err != nil {
		return nil, err
	}
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
	default:
		return nil, tool.Invalidf("method", "unsupported method %q", opts.Method)
	}

	ctx, cancel := context.WithTimeout(ctx, clampTimeout(opts.Timeout))
	defer cancel()

	var body io.Reader
	if opts.Body != "" {
		body = strings.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, truncated, err := readCapped(resp.Body, defaultBodyCap)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	return &RequestResult{
		URL:        rawURL,
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(data),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Truncated:  truncated,
	}, nil
}

// Links extracts the anchors of a page, resolved to absolute URLs and
// deduplicated, in document order.
func Links(ctx context.Context, rawURL string, timeout time.Duration, maxLinks int) (*LinksResult, error) {
	base, err := checkURL(rawURL)
	if err != nil {
		return nil, err
	}
	if maxLinks <= 0 {
		maxLinks = defaultMaxLinks
	}

	doc, finalURL, err := fetchDocument(ctx, rawURL, timeout)
	if err != nil {
		return nil, err
	}
	if resolved, err := url.Parse(finalURL); err == nil {
		base = resolved
	}

	seen := make(map[string]bool)
	var links []Link
	truncated := false
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		abs.Fragment = ""
		key := abs.String()
		if seen[key] {
			return true
		}
		if len(links) >= maxLinks {
			truncated = true
			return false
		}
		seen[key] = true
		links = append(links, Link{URL: key, Text: collapseSpace(s.Text())})
		return true
	})

	return &LinksResult{URL: rawURL, Links: links, Count: len(links), Truncated: truncated}, nil
}

// Metadata extracts title, description, canonical URL and open-graph
// properties from a page head.
func Metadata(ctx context.Context, rawURL string, timeout time.Duration) (*MetadataResult, error) {
	if _, err := checkURL(rawURL); err != nil {
		return nil, err
	}
	doc, _, err := fetchDocument(ctx, rawURL, timeout)
	if err != nil {
		return nil, err
	}

	res := &MetadataResult{
		URL:   rawURL,
		Title: collapseSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		res.Description = strings.TrimSpace(desc)
	}
	if canon, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		res.Canonical = strings.TrimSpace(canon)
	}

	og := make(map[string]string)
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		prop = strings.TrimPrefix(prop, "og:")
		if prop != "" && content != "" {
			if _, dup := og[prop]; !dup {
				og[prop] = content
			}
		}
	})
	if len(og) > 0 {
		res.OpenGraph = og
	}
	return res, nil
}

func fetchDocument(ctx context.Context, rawURL string, timeout time.Duration) (*goquery.Document, string, error) {
	ctx, cancel := context.WithTimeout(ctx, clampTimeout(timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("fetch %s: status %s", rawURL, resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, defaultBodyCap))
	if err != nil {
		return nil, "", fmt.Errorf("parse html of %s: %w", rawURL, err)
	}
	return doc, resp.Request.URL.String(), nil
}

// readCapped reads at most max bytes and reports whether the stream held
// more.
func readCapped(r io.Reader, max int) ([]byte, bool, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > max {
		return data[:max], true, nil
	}
	return data, false, nil
}

var (
	htmlStrip  = bluemonday.StrictPolicy()
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	trailingWS = regexp.MustCompile(`[ \t]+\n`)
	blockEnd   = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|tr|section|article)>`)
	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// HTMLToText strips all markup from an HTML fragment and collapses the
// leftover whitespace.
func HTMLToText(s string) string {
	// Block-level closers become newlines so stripped text keeps its
	// paragraph structure.
	s = blockEnd.ReplaceAllString(s, "\n")
	s = lineBreak.ReplaceAllString(s, "\n")

	s = htmlStrip.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = trailingWS.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
