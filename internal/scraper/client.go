// Package scraper pulls job postings from a Remotive-style public jobs API
// and converts them into the internal posting model.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobscout/internal/job"
	"jobscout/internal/match"
	"jobscout/internal/utils"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL  = "https://remotive.com/api/remote-jobs"
	DefaultPlatform = "remotive"

	pageSize  = 50
	maxPages  = 5
	pageDelay = 2 * time.Second

	httpTimeout = 15 * time.Second
	userAgent   = "jobscout"
)

type Client struct {
	BaseURL    string
	Platform   string
	HTTPClient *http.Client

	logger *zap.Logger
}

func NewClient(baseURL, platform string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if platform == "" {
		platform = DefaultPlatform
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		BaseURL:    baseURL,
		Platform:   platform,
		HTTPClient: &http.Client{Timeout: httpTimeout},
		logger:     logger,
	}
}

// feedResponse mirrors the top-level feed payload.
type feedResponse struct {
	Jobs []map[string]interface{} `json:"jobs"`
}

// feedItem is a single listing as the feed serves it. The id is left untyped
// because some feeds send numbers and some send strings.
type feedItem struct {
	ID          interface{} `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company_name"`
	Location    string      `json:"candidate_required_location"`
	Description string      `json:"description"`
	Salary      string      `json:"salary"`
	JobType     string      `json:"job_type"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags"`
	PublishedAt string      `json:"publication_date"`
}

// Fetch retrieves postings for the query, walking the feed page by page with
// a polite delay between requests. It stops on an empty or short page.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]*job.Posting, error) {
	var postings []*job.Posting

	for page := 1; page <= maxPages; page++ {
		if page > 1 {
			if err := utils.WaitFor(ctx, pageDelay); err != nil {
				return postings, err
			}
		}

		items, err := c.fetchPage(ctx, query, page)
		if err != nil {
			return postings, fmt.Errorf("page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			postings = append(postings, c.toPosting(item))
			if limit > 0 && len(postings) >= limit {
				return postings, nil
			}
		}

		if len(items) < pageSize {
			break
		}
	}

	c.logger.Info("fetched postings",
		zap.String("query", query),
		zap.Int("count", len(postings)),
	)

	return postings, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, page int) ([]*feedItem, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, err
	}

	var items []*feedItem
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &items,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(feed.Jobs); err != nil {
		return nil, err
	}

	return items, nil
}

// toPosting converts a feed item into a posting. Skills come from the feed
// tags when present, otherwise from a vocabulary scan of the listing text.
func (c *Client) toPosting(item *feedItem) *job.Posting {
	description := stripHTML(item.Description)

	skills := item.Tags
	if len(skills) == 0 {
		skills = match.ExtractSkills(item.Title + " " + description)
	}

	posting := &job.Posting{
		ID:          job.GenerateID(item.URL, c.Platform),
		Title:       strings.TrimSpace(item.Title),
		Company:     strings.TrimSpace(item.Company),
		Location:    strings.TrimSpace(item.Location),
		Skills:      skills,
		Description: description,
		Salary:      strings.TrimSpace(item.Salary),
		JobType:     item.JobType,
		URL:         item.URL,
		Platform:    c.Platform,
	}

	if strings.Contains(strings.ToLower(posting.Location), "remote") {
		remote := true
		posting.Remote = &remote
	}

	if ts, err := time.Parse("2006-01-02T15:04:05", item.PublishedAt); err == nil {
		posting.PostedAt = ts
	}

	return posting
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// stripHTML flattens the feed's HTML descriptions into plain text.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
