// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches paper metadata from the arXiv search API and
// filters it to the configured recency window.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "http://export.arxiv.org/api/query"

const (
	defaultMaxResults = 50
	defaultTimeout    = 10 * time.Second
	pdfLinkType       = "application/pdf"
)

// Client queries the arXiv API for one topic at a time.
type Client struct {
	client     *http.Client
	maxResults int
	userAgent  string
}

// NewClient builds a feed client from configuration. Zero values fall
// back to defaults (50 results, 10 s timeout).
func NewClient(cfg types.FeedConfig) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client:     &http.Client{Timeout: timeout},
		maxResults: maxResults,
		userAgent:  cfg.UserAgent,
	}
}

// Fetch issues one request for the topic and returns the parsed
// entries, newest submissions first. Malformed entries are skipped;
// transport errors and non-200 responses surface as errors so the
// caller can log and move to the next topic.
func (c *Client) Fetch(ctx context.Context, topic string) ([]types.RawArticle, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("empty topic")
	}

	params := url.Values{}
	params.Set("search_query", topic)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(c.maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var parsed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var articles []types.RawArticle
	for _, entry := range parsed.Entries {
		article, ok := parseEntry(entry)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// parseEntry converts one Atom entry into a RawArticle. Entries with an
// empty title or an unparseable timestamp are dropped; a missing PDF
// link only leaves PDFURL empty.
func parseEntry(entry atomEntry) (types.RawArticle, bool) {
	title := strings.Join(strings.Fields(entry.Title), " ")
	if title == "" {
		return types.RawArticle{}, false
	}

	published, err := time.Parse(time.RFC3339, entry.Published)
	if err != nil {
		return types.RawArticle{}, false
	}

	var pdfURL string
	for _, link := range entry.Links {
		if link.Type == pdfLinkType {
			pdfURL = link.Href
			break
		}
	}

	return types.RawArticle{
		Title:     title,
		Published: published.UTC(),
		PDFURL:    pdfURL,
	}, true
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Published string     `xml:"published"`
	Links     []atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}
