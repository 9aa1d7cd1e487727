// Copyright (c) 2026 Ambutrack. All rights reserved.

package eta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/emsgrid/ambutrack/internal/platform/apperr"
	"github.com/emsgrid/ambutrack/pkg/geo"
)

const (
	mapboxBaseURL = "https://api.mapbox.com"

	// driving-traffic folds live congestion into the estimate, which is the
	// whole point of routing an ambulance.
	mapboxProfile = "driving-traffic"

	requestTimeout = 10 * time.Second
)

// MapboxFinder resolves ETAs through the Mapbox Directions API.
type MapboxFinder struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewMapboxFinder creates a [MapboxFinder] with the given access token.
func NewMapboxFinder(token string) *MapboxFinder {
	return &MapboxFinder{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: mapboxBaseURL,
		token:   token,
	}
}

// NewMapboxFinderWithBaseURL creates a [MapboxFinder] pointed at a custom
// endpoint. Used by tests.
func NewMapboxFinderWithBaseURL(token, baseURL string) *MapboxFinder {
	finder := NewMapboxFinder(token)
	finder.baseURL = baseURL
	return finder
}

type directionsResponse struct {
	Routes []struct {
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (finder *MapboxFinder) ETA(ctx context.Context, _ string, from, to geo.Point) (time.Duration, error) {
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s;%s",
		finder.baseURL, mapboxProfile, from.String(), to.String())

	query := url.Values{}
	query.Set("access_token", finder.token)
	query.Set("overview", "false")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	response, err := finder.client.Do(request)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return 0, apperr.Internal(fmt.Errorf("mapbox directions: unexpected status %d", response.StatusCode))
	}

	var directions directionsResponse
	if err := json.NewDecoder(response.Body).Decode(&directions); err != nil {
		return 0, apperr.Internal(err)
	}

	if len(directions.Routes) == 0 {
		return 0, ErrNoRoutes
	}

	return time.Duration(directions.Routes[0].Duration * float64(time.Second)), nil
}
