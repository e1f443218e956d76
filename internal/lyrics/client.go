// Package lyrics looks up song lyrics on lrclib and parses synced LRC text.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
)

// DefaultEndpoint is the lrclib exact-match lookup.
const DefaultEndpoint = "https://lrclib.net/api/get"

// ErrNotFound is returned when no lyrics exist or the lookup failed.
var ErrNotFound = apperrors.ErrLyricsNotFound

// Query identifies a track.
type Query struct {
	Artist   string
	Title    string
	Album    string
	Duration float64 // seconds
}

// Result holds whatever lyrics were found. Synced is nil when only plain
// text is available.
type Result struct {
	Synced       []Line
	Plain        string
	Instrumental bool
}

type response struct {
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
	Instrumental bool   `json:"instrumental"`
}

// Client fetches lyrics over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// NewClient creates a Client. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		userAgent:  "crossroads (https://github.com/olivier-w/crossroads)",
	}
}

// Fetch looks up lyrics for q. Any failure, including a network error,
// is reported as ErrNotFound wrapping the cause.
func (c *Client) Fetch(ctx context.Context, q Query) (Result, error) {
	params := url.Values{}
	params.Set("artist_name", q.Artist)
	params.Set("track_name", q.Title)
	params.Set("album_name", q.Album)
	params.Set("duration", strconv.Itoa(int(math.Round(q.Duration))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	res := Result{
		Synced:       ParseSynced(body.SyncedLyrics),
		Plain:        body.PlainLyrics,
		Instrumental: body.Instrumental,
	}
	if res.Synced == nil && res.Plain == "" && !res.Instrumental {
		return Result{}, ErrNotFound
	}
	return res, nil
}
