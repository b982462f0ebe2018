package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"wikihistories/internal/ports"
)

// Renderer fetches the rendered HTML of a single revision through the
// action=parse endpoint and strips it down to paragraph text.
type Renderer struct {
	apiURL     *url.URL
	httpClient *http.Client
	userAgent  string
}

var _ ports.TextRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer for one wiki host.
func NewRenderer(host string, httpClient *http.Client) (*Renderer, error) {
	return NewRendererURL("https://"+host+apiPath, httpClient)
}

// NewRendererURL is NewRenderer for a full API endpoint URL.
func NewRendererURL(endpoint string, httpClient *http.Client) (*Renderer, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	apiURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid api endpoint %s: %w", endpoint, err)
	}
	return &Renderer{apiURL: apiURL, httpClient: httpClient, userAgent: defaultUserAgent}, nil
}

// SetUserAgent overrides the identifying User-Agent header.
func (r *Renderer) SetUserAgent(ua string) {
	if ua != "" {
		r.userAgent = ua
	}
}

type parseResponse struct {
	Parse *struct {
		Text struct {
			HTML string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// RenderedText returns the visible paragraph text of one revision, with
// paragraphs concatenated directly. A nil result means the revision is
// deleted or inaccessible (the API answered with an error code such as
// nosuchrevid); that is not a failure and the history fetch carries on.
// Transport faults propagate.
func (r *Renderer) RenderedText(ctx context.Context, revID int64) (*string, error) {
	u := *r.apiURL
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("format", "json")
	params.Set("prop", "text")
	params.Set("oldid", strconv.FormatInt(revID, 10))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki returned %s", resp.Status)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, nil
	}
	if parsed.Parse == nil {
		return nil, fmt.Errorf("revision %d: response missing parse section", revID)
	}

	text, err := paragraphText(parsed.Parse.Text.HTML)
	if err != nil {
		return nil, fmt.Errorf("revision %d: %w", revID, err)
	}
	return &text, nil
}

// paragraphText strips markup from an HTML fragment and joins the text of
// its paragraph elements without a separator.
func paragraphText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		sb.WriteString(p.Text())
	})
	return sb.String(), nil
}
