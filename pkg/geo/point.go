// Copyright (c) 2026 Ambutrack. All rights reserved.

// Package geo provides the minimal geographic value type shared by the
// ambulance tracker, settings, and ETA subsystems.
package geo

import "fmt"

// Point is a WGS84 coordinate pair.
//
// Longitude comes first to match the lon,lat ordering used by the Mapbox
// directions API and the database columns.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// NewPoint constructs a point from a longitude and latitude.
func NewPoint(lon, lat float64) Point {
	return Point{Lon: lon, Lat: lat}
}

// String renders the point as "lon,lat" with enough precision for routing.
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lon, p.Lat)
}
