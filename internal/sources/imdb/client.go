package imdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the event page root for the ceremony.
const DefaultBaseURL = "https://www.imdb.com/event/ev0000003"

// userAgent mirrors a desktop browser; the event pages refuse obvious bots.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0"

// classicPayloadPattern extracts the widget JSON from the classic page
// generation, where the payload is an argument in an inline script call.
var classicPayloadPattern = regexp.MustCompile(`'center-3-react',(.*)]\);`)

// Client fetches raw ceremony payloads, caching each edition on disk.
type Client struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a catalog client. cacheDir may be empty to disable caching.
func New(baseURL, cacheDir string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EditionYear maps an edition number to the year and instance segments of
// its event page URL. Three ceremonies were held across 1930-1932 in an
// irregular rhythm before the annual cadence settled.
func EditionYear(edition int) (year, instance int) {
	switch edition {
	case 3:
		return 1930, 2
	case 4:
		return 1931, 1
	case 5:
		return 1932, 1
	default:
		return 1928 + edition, 1
	}
}

// Fetch returns the raw JSON payload for one edition, reading the disk cache
// when present and populating it after a successful network fetch.
func (c *Client) Fetch(ctx context.Context, edition int) ([]byte, error) {
	if edition < 1 {
		return nil, fmt.Errorf("edition must be positive, got %d", edition)
	}

	var cachePath string
	if c.cacheDir != "" {
		cachePath = filepath.Join(c.cacheDir, strconv.Itoa(edition)+".json")
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read catalog cache: %w", err)
		}
	}

	year, instance := EditionYear(edition)
	pageURL := fmt.Sprintf("%s/%d/%d", c.baseURL, year, instance)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch event page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event page for edition %d returned %d", edition, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read event page: %w", err)
	}

	data, err := ExtractPayload(body)
	if err != nil {
		return nil, fmt.Errorf("edition %d: %w", edition, err)
	}

	if cachePath != "" {
		if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog cache dir: %w", err)
		}
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			return nil, fmt.Errorf("write catalog cache: %w", err)
		}
	}
	return data, nil
}

// ExtractPayload pulls the JSON data block out of an event page. The classic
// generation inlines it in an article div script; the current generation
// ships it in the __NEXT_DATA__ script element.
func ExtractPayload(page []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse event page: %w", err)
	}

	if article := doc.Find("div.article"); article.Length() > 0 {
		if m := classicPayloadPattern.FindStringSubmatch(article.Text()); m != nil {
			return []byte(m[1]), nil
		}
	}
	if script := doc.Find("script#__NEXT_DATA__"); script.Length() > 0 {
		return []byte(script.Text()), nil
	}
	return nil, errors.New("no nominee payload found in event page")
}
