// Package fetch provides a client for retrieving dashboard snapshots from a running server.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/render"
	"github.com/yourorg/agent-gdp/internal/timeframe"
)

// ErrFingerprintMismatch is returned when a snapshot does not hash to its advertised fingerprint.
var ErrFingerprintMismatch = errors.New("snapshot fingerprint mismatch")

// Client retrieves snapshots from the /api/snapshot endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*retryablehttp.Client)

// WithRetryMax overrides the number of retries
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) { c.RetryMax = n }
}

// WithRetryWait overrides the backoff bounds
func WithRetryWait(min, max time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = min
		c.RetryWaitMax = max
	}
}

// NewClient creates a snapshot client for the server at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := newRetryClient()
	for _, opt := range opts {
		opt(retryClient)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: StandardClient(retryClient),
	}
}

// newRetryClient creates a new HTTP client with retry capabilities
func newRetryClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.Logger = nil
	return c
}

// StandardClient converts a retryablehttp.Client to a standard http.Client
func StandardClient(retryClient *retryablehttp.Client) *http.Client {
	return retryClient.StandardClient()
}

// Snapshot fetches the snapshot for tf and seed and verifies its fingerprint.
// A nil seed lets the server pick one.
func (c *Client) Snapshot(ctx context.Context, tf timeframe.Timeframe, seed *uint64) (model.Snapshot, error) {
	q := url.Values{}
	q.Set("tf", tf.String())
	if seed != nil {
		q.Set("seed", strconv.FormatUint(*seed, 10))
	}
	endpoint := c.baseURL + "/api/snapshot?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logrus.Debugf("Fetching snapshot: %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("error fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return model.Snapshot{}, fmt.Errorf("snapshot API error: status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return model.Snapshot{}, fmt.Errorf("snapshot API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var snap model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("error decoding response: %w", err)
	}

	fp, err := render.SnapshotFingerprint(snap)
	if err != nil {
		return model.Snapshot{}, err
	}
	if !strings.EqualFold(fp, snap.Fingerprint) {
		return model.Snapshot{}, fmt.Errorf("%w: got %s, advertised %s", ErrFingerprintMismatch, fp, snap.Fingerprint)
	}

	logrus.WithFields(logrus.Fields{
		"seed":      snap.Seed,
		"timeframe": snap.Timeframe,
		"points":    len(snap.Points),
	}).Debug("Snapshot fetched")

	return snap, nil
}
