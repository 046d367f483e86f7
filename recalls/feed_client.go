// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"recallguard-server/commons"
	"strconv"
	"time"
)

// maxFeedBody caps how much of the feed response is read; the largest
// permitted page (limit=1000) stays well under this.
const maxFeedBody = 32 << 20

type FeedConfig struct {
	baseURL string
	limit   int
}

type FeedClient struct {
	BaseURL    *url.URL
	Limit      int
	HTTPClient *http.Client
}

func NewFeedClient(c FeedConfig) (*FeedClient, error) {
	if c.baseURL == "" {
		c.baseURL = commons.GetEnv("RECALL_FEED_URL", "https://api.fda.gov/food/enforcement.json")
	}
	if c.limit == 0 {
		c.limit = 1000
		if v := commons.GetEnv("RECALL_LIMIT"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i > 0 {
				c.limit = i
			}
		}
	}

	parsedURL, err := url.Parse(c.baseURL)
	if err != nil {
		commons.Logger.Error("Failed to parse recall feed base URL:", err)
		return nil, err
	}
	commons.Logger.Debugf("Recall feed client initialized for %s", c.baseURL)
	return &FeedClient{
		BaseURL:    parsedURL,
		Limit:      c.limit,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// FetchRange queries the enforcement feed for recalls reported in
// [from, to]. The feed's query syntax wants the range verbatim, so the
// search parameter is assembled by hand rather than url.Values-encoded.
func (c *FeedClient) FetchRange(ctx context.Context, from, to string) ([]Entry, error) {
	commons.Logger.Debugf("Fetching recalls for report_date:[%s TO %s]", from, to)

	u := *c.BaseURL
	u.RawQuery = fmt.Sprintf("search=report_date:[%s+TO+%s]&limit=%d", from, to, c.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		commons.Logger.Errorf("Recall feed request failed: %s", resp.Status)
		return nil, fmt.Errorf("recall feed request failed: %s", resp.Status)
	}

	var feed feedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBody)).Decode(&feed); err != nil {
		return nil, err
	}

	commons.Logger.Debugf("Recall feed returned %d entries", len(feed.Results))
	return feed.Results, nil
}
