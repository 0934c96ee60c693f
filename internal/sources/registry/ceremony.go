package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"garland/internal/award"
)

// DefaultBaseURL is the ceremony page root on the official site.
const DefaultBaseURL = "https://www.oscars.org/oscars/ceremonies"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0"

// Client fetches per-ceremony pages from the official site.
type Client struct {
	baseURL    string
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

// NewClient creates a ceremony page client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("registry base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) fetchCeremony(ctx context.Context, edition int) (*goquery.Document, error) {
	pageURL := c.baseURL + "/" + strconv.Itoa(1928+edition)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ceremony page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ceremony page for edition %d returned %d", edition, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse ceremony page: %w", err)
	}
	return doc, nil
}

// PendingCategories scrapes a ceremony page for its announced nominations.
// Only useful for a ceremony whose results are not yet in the awards
// database; the page omits statements, notes, and most detail.
func (c *Client) PendingCategories(ctx context.Context, edition int) ([]award.OfficialCategory, error) {
	doc, err := c.fetchCeremony(ctx, edition)
	if err != nil {
		return nil, err
	}
	return ceremonyCategories(doc)
}

// ParseCeremonyCategories parses announced nominations from a ceremony page.
func ParseCeremonyCategories(r io.Reader) ([]award.OfficialCategory, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse ceremony page: %w", err)
	}
	return ceremonyCategories(doc)
}

func ceremonyCategories(doc *goquery.Document) ([]award.OfficialCategory, error) {
	var categories []award.OfficialCategory

	doc.Find("div.field--name-field-award-categories > div.field__item").Each(func(_ int, categoryDiv *goquery.Selection) {
		name := strings.TrimSpace(categoryDiv.Find("div.field--name-field-award-category-oscars").First().Text())

		var nominees []award.OfficialNominee
		categoryDiv.Find("div.field--name-field-award-honorees > div.field__item").Each(func(_ int, nomineeDiv *goquery.Selection) {
			honoreeType, _ := nomineeDiv.Find("div.field--name-field-honoree-type").First().Attr("class")
			winner := strings.Contains(honoreeType, "winner")

			title := strings.TrimSpace(nomineeDiv.Find("div.field--name-field-award-film").First().Text())
			statement := strings.TrimSpace(nomineeDiv.Find("div.field--name-field-award-entities").First().Text())

			// Country categories list the country where the film goes and
			// the film where the statement goes.
			if strings.HasPrefix(name, "International") || strings.HasPrefix(name, "Foreign") {
				title, statement = statement, title
			}

			var detail []string
			if name == "Music (Original Song)" {
				// The film slot holds the song; the statement leads with
				// `from <film>;` followed by the writing credits.
				detail = []string{title}
				head, rest, found := strings.Cut(statement, "; ")
				title = strings.TrimPrefix(head, "from ")
				if found {
					statement = rest
				}
			}

			nominees = append(nominees, award.OfficialNominee{
				Winner:    winner,
				Films:     []string{title},
				Statement: statement,
				Detail:    detail,
			})
		})

		categories = append(categories, award.OfficialCategory{Category: name, Nominees: nominees})
	})

	if len(categories) == 0 {
		return nil, errors.New("no announced categories on ceremony page")
	}
	return categories, nil
}

// YearLabel is the listed award year for an edition. Early ceremonies
// honored films across a two-year window.
func YearLabel(edition int) string {
	if edition < 7 {
		return fmt.Sprintf("%d/%s", 1926+edition, strconv.Itoa(1927+edition)[2:])
	}
	return strconv.Itoa(1927 + edition)
}

// Edition scrapes one ceremony page for its metadata.
func (c *Client) Edition(ctx context.Context, edition int) (award.Edition, error) {
	doc, err := c.fetchCeremony(ctx, edition)
	if err != nil {
		return award.Edition{}, err
	}
	date, err := ceremonyDate(doc)
	if err != nil {
		return award.Edition{}, fmt.Errorf("edition %d: %w", edition, err)
	}
	return award.Edition{
		Award:        "oscar",
		Iteration:    edition,
		OfficialYear: YearLabel(edition),
		CeremonyDate: date,
	}, nil
}

// Editions scrapes ceremony metadata for an inclusive edition range.
func (c *Client) Editions(ctx context.Context, start, end int) ([]award.Edition, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid edition range %d..%d", start, end)
	}
	editions := make([]award.Edition, 0, end-start+1)
	for edition := start; edition <= end; edition++ {
		e, err := c.Edition(ctx, edition)
		if err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}
	return editions, nil
}

// ParseCeremonyDate parses the ceremony date from a ceremony page.
func ParseCeremonyDate(r io.Reader) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ceremony page: %w", err)
	}
	return ceremonyDate(doc)
}

func ceremonyDate(doc *goquery.Document) (time.Time, error) {
	text := strings.TrimSpace(doc.Find("div.field--name-field-date-time").First().Text())
	if text == "" {
		return time.Time{}, errors.New("ceremony page has no date block")
	}
	// The block reads like "Sunday, March 10, 2024"; the weekday goes.
	if _, rest, found := strings.Cut(text, ", "); found {
		text = rest
	}
	date, err := time.Parse("January 2, 2006", text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ceremony date %q: %w", text, err)
	}
	return date, nil
}
