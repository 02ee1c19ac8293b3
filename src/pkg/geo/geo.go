package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate pair. Persisted as PostGIS geography,
// serialized in WKT form with SRID 4326.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const earthRadiusKm = 6371.0

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrUnparsablePoint  = errors.New("value is not a recognizable geographic point")
)

// ValidateCoordinates checks inclusive WGS84 bounds.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// ToPostGISPoint serializes a point as "SRID=4326;POINT(lon lat)".
func ToPostGISPoint(p Point) string {
	return fmt.Sprintf("SRID=4326;POINT(%s %s)",
		strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		strconv.FormatFloat(p.Latitude, 'f', -1, 64))
}

// ParsePostGISPoint parses WKT point text, with or without the SRID prefix.
func ParsePostGISPoint(s string) (Point, error) {
	text := strings.TrimSpace(s)
	if idx := strings.Index(text, ";"); idx >= 0 {
		prefix := strings.ToUpper(strings.TrimSpace(text[:idx]))
		if !strings.HasPrefix(prefix, "SRID=") {
			return Point{}, fmt.Errorf("%w: unexpected prefix %q", ErrUnparsablePoint, text[:idx])
		}
		text = strings.TrimSpace(text[idx+1:])
	}

	upper := strings.ToUpper(text)
	if !strings.HasPrefix(upper, "POINT") {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparsablePoint, s)
	}
	open := strings.Index(text, "(")
	end := strings.LastIndex(text, ")")
	if open < 0 || end < open {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparsablePoint, s)
	}

	fields := strings.Fields(text[open+1 : end])
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparsablePoint, s)
	}
	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparsablePoint, s)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrUnparsablePoint, s)
	}
	if err := ValidateCoordinates(lat, lng); err != nil {
		return Point{}, err
	}
	return Point{Latitude: lat, Longitude: lng}, nil
}

// ParseLocation accepts the three wire forms clients send: WKT text,
// an object {latitude, longitude}, or a GeoJSON Point.
func ParseLocation(raw json.RawMessage) (Point, error) {
	if len(raw) == 0 {
		return Point{}, ErrUnparsablePoint
	}

	var wkt string
	if err := json.Unmarshal(raw, &wkt); err == nil {
		return ParsePostGISPoint(wkt)
	}

	var obj struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Latitude != nil && obj.Longitude != nil {
		if err := ValidateCoordinates(*obj.Latitude, *obj.Longitude); err != nil {
			return Point{}, err
		}
		return Point{Latitude: *obj.Latitude, Longitude: *obj.Longitude}, nil
	}

	var geoJSON struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geoJSON); err == nil &&
		strings.EqualFold(geoJSON.Type, "Point") && len(geoJSON.Coordinates) >= 2 {
		lng, lat := geoJSON.Coordinates[0], geoJSON.Coordinates[1]
		if err := ValidateCoordinates(lat, lng); err != nil {
			return Point{}, err
		}
		return Point{Latitude: lat, Longitude: lng}, nil
	}

	return Point{}, ErrUnparsablePoint
}

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b Point) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
