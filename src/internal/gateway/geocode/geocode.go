package geocode

import (
	"context"
	"errors"

	"googlemaps.github.io/maps"
)

// Geocoder resolves coordinates to an address via the Google Maps API.
// Callers treat failures as best-effort; an empty address is acceptable.
type Geocoder struct {
	Client *maps.Client
}

func NewGeocoder(client *maps.Client) *Geocoder {
	return &Geocoder{Client: client}
}

func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if g.Client == nil {
		return "", errors.New("geocoder is not configured")
	}

	results, err := g.Client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}
