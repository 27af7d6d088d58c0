// Package websearch queries DuckDuckGo's HTML endpoint and returns the
// organic results. It is only called after the user asked for the web or
// accepted a web-search offer.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var ErrEmptyQuery = errors.New("empty search query")

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Config struct {
	BaseURL    string
	Region     string // DuckDuckGo "kl" parameter
	MaxResults int
	ClipChars  int // title and snippet are cut to this many runes
	UserAgent  string
	Timeout    time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://html.duckduckgo.com/html/",
		Region:     "fr-fr",
		MaxResults: 5,
		ClipChars:  300,
		UserAgent:  "ai-tutor/1.0 (education use)",
		Timeout:    15 * time.Second,
	}
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.ClipChars <= 0 {
		cfg.ClipChars = def.ClipChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Client{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Search cleans query of its trigger words and returns at most maxResults
// results (the configured default when maxResults <= 0).
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	q := CleanQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}

	params := url.Values{}
	params.Set("q", q)
	if c.cfg.Region != "" {
		params.Set("kl", c.cfg.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return parseResults(resp.Body, maxResults, c.cfg.ClipChars)
}

func parseResults(r io.Reader, max, clipChars int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []Result
	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := collapse(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}

		results = append(results, Result{
			Title:   clip(title, clipChars),
			URL:     resolveLink(href),
			Snippet: clip(collapse(s.Find(".result__snippet").First().Text()), clipChars),
		})
		return len(results) < max
	})

	return results, nil
}

// resolveLink unwraps DuckDuckGo's redirect ("//duckduckgo.com/l/?uddg=...")
func resolveLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

var triggerPattern = regexp.MustCompile(`(?i)^\s*(?:(?:peux|pourrais)[- ]tu\s+)?(?:fais\s+)?(?:une\s+)?(?:re)?cherche[rsz]?(?:[- ]moi)?(?:\s+(?:sur|dans|via|en)\s+(?:le\s+web|internet|google|le\s+net|ligne))?(?:\s+(?:pour|sur|à propos de|a propos de))?\s*:?\s*|^\s*(?:search|look\s+up)(?:\s+(?:on\s+)?(?:the\s+web|the\s+internet|online|google))?(?:\s+for)?\s*:?\s*|^\s*(?:web\s+search|recherche\s+web)\s*:?\s*`)

// CleanQuery strips a leading search instruction ("cherche sur le web",
// "recherche :", "search the web for") from text. When nothing is left the
// trimmed input is returned unchanged.
func CleanQuery(text string) string {
	t := strings.TrimSpace(text)
	cleaned := strings.TrimSpace(triggerPattern.ReplaceAllString(t, ""))
	if cleaned == "" {
		return t
	}
	return cleaned
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
