package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"wikihistories/internal/domain"
	"wikihistories/internal/ports"
)

const (
	defaultUserAgent = "wikihistories/1.0"
	apiPath          = "/w/api.php"
)

// Client talks to a MediaWiki action API endpoint and enumerates revision
// history. Revisions come back newest first: the client pins rvdir=older so
// the ordering is an explicit request parameter, not an assumption about
// the site's default.
type Client struct {
	apiURL     *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ ports.RevisionSource = (*Client)(nil)

// NewClient builds a client for one wiki host (e.g. "en.wikipedia.org").
func NewClient(host string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}

	apiURL, err := url.Parse("https://" + host + apiPath)
	if err != nil {
		return nil, fmt.Errorf("invalid wiki host %s: %w", host, err)
	}

	return &Client{
		apiURL:     apiURL,
		httpClient: httpClient,
		userAgent:  defaultUserAgent,
		logger:     logger,
	}, nil
}

// NewClientURL is NewClient for a full API endpoint URL; tests point it at
// a local server.
func NewClientURL(endpoint string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	apiURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid api endpoint %s: %w", endpoint, err)
	}
	return &Client{apiURL: apiURL, httpClient: httpClient, userAgent: defaultUserAgent, logger: logger}, nil
}

// SetUserAgent overrides the identifying User-Agent header the wiki
// requires on every request.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

type queryResponse struct {
	Continue *struct {
		RvContinue string `json:"rvcontinue"`
	} `json:"continue"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Query *struct {
		Pages []struct {
			Title     string            `json:"title"`
			Missing   bool              `json:"missing"`
			Revisions []domain.Metadata `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Revisions pulls the full revision metadata of one page, following
// rvcontinue pagination until the history is exhausted. A page that does
// not exist (a talk page, typically) yields an empty slice. Content is
// requested only when withContent is set.
func (c *Client) Revisions(ctx context.Context, title string, withContent bool) ([]domain.Metadata, error) {
	rvprop := "ids|timestamp|flags|user|comment"
	if withContent {
		rvprop += "|content"
	}

	u := *c.apiURL
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("redirects", "1")
	params.Set("titles", title)
	params.Set("prop", "revisions")
	params.Set("rvslots", "main")
	params.Set("rvprop", rvprop)
	params.Set("rvdir", "older")
	params.Set("rvlimit", "500")

	var records []domain.Metadata
	for {
		u.RawQuery = params.Encode()

		page, err := c.fetchQuery(ctx, u.String())
		if err != nil {
			return nil, err
		}
		if page.Error != nil {
			return nil, fmt.Errorf("wiki api error %s: %s", page.Error.Code, page.Error.Info)
		}
		if page.Query == nil || len(page.Query.Pages) == 0 {
			return nil, fmt.Errorf("wiki api returned no page for %q", title)
		}

		first := page.Query.Pages[0]
		if first.Missing {
			return records, nil
		}
		records = append(records, first.Revisions...)

		if page.Continue == nil || page.Continue.RvContinue == "" {
			break
		}
		params.Set("rvcontinue", page.Continue.RvContinue)
	}

	if c.logger != nil {
		c.logger.Debug("revisions fetched", "title", title, "count", len(records))
	}
	return records, nil
}

func (c *Client) fetchQuery(ctx context.Context, pageURL string) (*queryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki returned %s", resp.Status)
	}

	var page queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}
