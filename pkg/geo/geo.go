// Package geo parses and validates the geocode substrings embedded in
// collected queries. Downstream consumers of the dataset rely on the
// "geocode:<lat>,<lon>" contract to place rows on a map.
package geo

import (
	"math"
	"regexp"
	"strconv"
)

var geocodePattern = regexp.MustCompile(`geocode:([-+]?\d+\.\d+),([-+]?\d+\.\d+)`)

// ParseGeocode extracts latitude and longitude from a query string carrying a
// "geocode:lat,lon" substring. ok is false when no parseable geocode is
// present.
func ParseGeocode(query string) (lat, lon float64, ok bool) {
	m := geocodePattern.FindStringSubmatch(query)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// ValidCoordinates reports whether lat/lon fall inside the WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

const earthRadiusKM = 6371

// Distance returns the approximate great-circle distance between two points
// in kilometers (haversine).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	lat1, lon1 = toRad(lat1), toRad(lon1)
	lat2, lon2 = toRad(lat2), toRad(lon2)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKM * c
}
