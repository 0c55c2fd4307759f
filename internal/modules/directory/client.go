package directory

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://all.api.radio-browser.info/json"
	DefaultTimeout = 10 * time.Second

	DefaultSearchLimit  = 50
	DefaultPopularLimit = 30
	MaxSearchLimit      = 100
)

// Fallback lists served when the directory is unreachable, so the pickers
// in the UI are never empty.
var (
	fallbackGenres = []string{
		"Pop", "Rock", "Jazz", "Classical", "Electronic",
		"Country", "Hip Hop", "News", "Talk",
	}
	fallbackCountries = []string{
		"United States", "United Kingdom", "Germany",
		"France", "Canada", "Australia",
	}
)

// Station is one normalized directory search result. It is a view over
// the upstream data, not a persisted row.
type Station struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Genre      string `json:"genre"`
	Country    string `json:"country"`
	Language   string `json:"language"`
	Bitrate    int    `json:"bitrate"`
	Codec      string `json:"codec"`
	Homepage   string `json:"homepage"`
	Favicon    string `json:"favicon"`
	Tags       string `json:"tags"`
	Votes      int    `json:"votes"`
	ClickCount int    `json:"clickcount"`
	ServerType string `json:"server_type"`
}

type SearchParams struct {
	Query    string
	Genre    string
	Country  string
	Language string
	Limit    int
}

// Client talks to a radio-browser.info style directory. All failures are
// absorbed: callers get an empty (or fallback) result, never an error —
// an unreachable directory must read as "unavailable", not break a page.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// rawStation mirrors the fields we read from the upstream payload.
type rawStation struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Country     string `json:"country"`
	Language    string `json:"language"`
	Bitrate     int    `json:"bitrate"`
	Codec       string `json:"codec"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Tags        string `json:"tags"`
	Votes       int    `json:"votes"`
	ClickCount  int    `json:"clickcount"`
}

// Search queries the directory ordered by descending click count and
// normalizes each result. Entries without any usable stream URL are
// dropped.
func (c *Client) Search(ctx context.Context, p SearchParams) []Station {
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("hidebroken", "true")
	params.Set("order", "clickcount")
	params.Set("reverse", "true")

	if p.Query != "" {
		// search both name and tag fields for broader results
		params.Set("name", p.Query)
		params.Set("tag", p.Query)
	}
	if p.Genre != "" {
		params.Set("tag", p.Genre)
	}
	if p.Country != "" {
		params.Set("country", p.Country)
	}
	if p.Language != "" {
		params.Set("language", p.Language)
	}

	var raw []rawStation
	if err := c.getJSON(ctx, "/stations/search", params, &raw); err != nil {
		log.Printf("directory search failed: %v", err)
		return []Station{}
	}

	stations := make([]Station, 0, len(raw))
	for _, r := range raw {
		streamURL := r.URLResolved
		if streamURL == "" {
			streamURL = r.URL
		}
		if streamURL == "" {
			continue
		}

		name := r.Name
		if name == "" {
			name = "Unknown Station"
		}

		stations = append(stations, Station{
			Name:       name,
			URL:        streamURL,
			Genre:      strings.ReplaceAll(r.Tags, ",", ", "),
			Country:    r.Country,
			Language:   r.Language,
			Bitrate:    r.Bitrate,
			Codec:      r.Codec,
			Homepage:   r.Homepage,
			Favicon:    r.Favicon,
			Tags:       r.Tags,
			Votes:      r.Votes,
			ClickCount: r.ClickCount,
			ServerType: serverType(streamURL),
		})
	}

	return stations
}

// Popular is an unfiltered search, which the upstream orders by clicks.
func (c *Client) Popular(ctx context.Context, limit int) []Station {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return c.Search(ctx, SearchParams{Limit: limit})
}

// Genres lists directory tags by station count, falling back to a fixed
// set when the upstream is unreachable.
func (c *Client) Genres(ctx context.Context) []string {
	params := url.Values{}
	params.Set("limit", "100")
	params.Set("order", "stationcount")
	params.Set("reverse", "true")

	var raw []struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/tags", params, &raw); err != nil {
		log.Printf("directory genres failed: %v", err)
		return fallbackGenres
	}

	genres := make([]string, 0, len(raw))
	for _, g := range raw {
		if g.Name != "" {
			genres = append(genres, g.Name)
		}
	}
	if len(genres) == 0 {
		return fallbackGenres
	}
	return genres
}

// Countries lists up to 50 countries by station count, with a fixed
// fallback when the upstream is unreachable.
func (c *Client) Countries(ctx context.Context) []string {
	params := url.Values{}
	params.Set("order", "stationcount")
	params.Set("reverse", "true")

	var raw []struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/countries", params, &raw); err != nil {
		log.Printf("directory countries failed: %v", err)
		return fallbackCountries
	}

	countries := make([]string, 0, 50)
	for _, co := range raw {
		if co.Name == "" {
			continue
		}
		countries = append(countries, co.Name)
		if len(countries) == 50 {
			break
		}
	}
	if len(countries) == 0 {
		return fallbackCountries
	}
	return countries
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &url.Error{Op: "Get", URL: req.URL.String(), Err: errStatus(resp.StatusCode)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type errStatus int

func (e errStatus) Error() string { return "unexpected status " + strconv.Itoa(int(e)) }

// serverType derives a best-effort display label from the stream URL.
// Not authoritative: it only substring-matches the vendor names.
func serverType(streamURL string) string {
	lower := strings.ToLower(streamURL)
	switch {
	case strings.Contains(lower, "shout"):
		return "Shoutcast"
	case strings.Contains(lower, "ice"):
		return "Icecast"
	default:
		return "Unknown"
	}
}
