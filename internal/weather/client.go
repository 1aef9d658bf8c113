package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
)

// DegradedCondition marks a snapshot produced without provider data.
const DegradedCondition = "unavailable"

const requestTimeout = 5 * time.Second

// Snapshot is the best-effort view of current conditions at a station.
// Numeric fields are pointers: an absent reading is null on the wire, never
// a fabricated zero. Humidity is a 0-1 fraction.
type Snapshot struct {
	Station      string   `json:"station"`
	Condition    string   `json:"condition"`
	TemperatureC *float64 `json:"temperatureC"`
	Humidity     *float64 `json:"humidity"`
	ObservedAt   *string  `json:"observedAt"`
}

// observation mirrors one record of the provider's observation document.
// Humidity arrives as a 0-100 percentage.
type observation struct {
	Station     string   `json:"station"`
	Weather     string   `json:"weather"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	ObsTime     *string  `json:"obsTime"`
}

type observationDocument struct {
	Records []observation `json:"records"`
}

// Client queries the external observation provider. Weather is best-effort:
// Current never returns an error, only a degraded snapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Current returns the latest conditions for the named station. Concurrent
// calls for the same station share one upstream request. Any failure - no
// provider configured, transport error, bad payload, unknown station -
// yields the degraded snapshot instead of an error, so a slow or dead
// provider never fails the surrounding request.
func (c *Client) Current(ctx context.Context, station string) Snapshot {
	if c.baseURL == "" {
		return degraded(station)
	}

	v, err, _ := c.group.Do(station, func() (any, error) {
		return c.fetch(ctx, station)
	})
	if err != nil {
		return degraded(station)
	}
	return v.(Snapshot)
}

func (c *Client) fetch(ctx context.Context, station string) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/observations?station=%s", c.baseURL, url.QueryEscape(station))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var doc observationDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Snapshot{}, err
	}

	for _, record := range doc.Records {
		if record.Station != station {
			continue
		}
		return Snapshot{
			Station:      record.Station,
			Condition:    record.Weather,
			TemperatureC: record.Temperature,
			Humidity:     normalizeHumidity(record.Humidity),
			ObservedAt:   record.ObsTime,
		}, nil
	}
	return Snapshot{}, fmt.Errorf("no observation for station %q", station)
}

// normalizeHumidity converts a percentage reading to a 0-1 fraction,
// keeping nil as nil.
func normalizeHumidity(percent *float64) *float64 {
	if percent == nil {
		return nil
	}
	fraction := *percent / 100
	return &fraction
}

func degraded(station string) Snapshot {
	return Snapshot{
		Station:   station,
		Condition: DegradedCondition,
	}
}
