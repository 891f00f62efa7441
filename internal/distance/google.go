// Package distance adapts external routing services to planner.DistanceProvider.
package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/planner"
)

// DefaultGoogleBaseURL is the Distance Matrix endpoint.
const DefaultGoogleBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

const metersPerMile = 1609.344

// ErrNoRoute is returned when the service knows both points but has no road
// route between them.
var ErrNoRoute = errors.New("no route")

// GoogleProvider asks the Google Distance Matrix API for driving distances.
// Requests are paced by a token-bucket limiter shared by all callers.
type GoogleProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ planner.DistanceProvider = (*GoogleProvider)(nil)

// GoogleOption configures a GoogleProvider.
type GoogleOption func(*GoogleProvider)

// WithBaseURL points the provider at another endpoint, e.g. an httptest server.
func WithBaseURL(u string) GoogleOption {
	return func(g *GoogleProvider) { g.baseURL = u }
}

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleProvider) { g.httpClient = c }
}

// NewGoogleProvider returns a provider allowing rps requests per second with
// bursts of up to burst requests.
func NewGoogleProvider(apiKey string, rps float64, burst int, opts ...GoogleOption) *GoogleProvider {
	if burst < 1 {
		burst = 1
	}
	g := &GoogleProvider{
		baseURL:    DefaultGoogleBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Leg returns the driving distance and duration from one waypoint to another.
func (g *GoogleProvider) Leg(ctx context.Context, from, to domain.Waypoint) (domain.Leg, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: %w", err)
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%.6f,%.6f", from.Lat, from.Lng))
	q.Set("destinations", fmt.Sprintf("%.6f,%.6f", to.Lat, to.Lng))
	q.Set("mode", "driving")
	q.Set("units", "imperial")
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: status %d: %s", resp.StatusCode, body)
	}

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: decode: %w", err)
	}
	if mr.Status != "OK" {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: %s %s", mr.Status, mr.ErrorMessage)
	}
	if len(mr.Rows) == 0 || len(mr.Rows[0].Elements) == 0 {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: empty matrix: %w", ErrNoRoute)
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return domain.Leg{}, fmt.Errorf("distance.GoogleProvider.Leg: %s to %s: %s: %w", from.Name, to.Name, el.Status, ErrNoRoute)
	}
	return domain.Leg{
		Miles:           el.Distance.Value / metersPerMile,
		DurationSeconds: el.Duration.Value,
	}, nil
}
