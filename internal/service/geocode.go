package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/forgo/places/api/internal/model"
)

// GeocodeConfig holds geocoder configuration
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// GeocodeService resolves addresses against a Nominatim-compatible
// search endpoint
type GeocodeService struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(cfg GeocodeConfig) *GeocodeService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &GeocodeService{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// nominatimResult is the subset of the search response we read.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to coordinates. An unreachable or failing
// endpoint reports ErrGeocodeFailed; a reachable endpoint with no match
// reports ErrAddressUnknown.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (model.Location, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Location{}, fmt.Errorf("%w: status %d", ErrGeocodeFailed, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.Location{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}

	if len(results) == 0 {
		return model.Location{}, ErrAddressUnknown
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: bad latitude %q", ErrGeocodeFailed, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: bad longitude %q", ErrGeocodeFailed, results[0].Lon)
	}

	return model.Location{Lat: lat, Lng: lng}, nil
}
