package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance. clientErr remembers a
// failed init; the once only fires one time, so the error has to outlive it
// or every later caller would get a nil client and no error.
var (
	mapsClient *maps.Client
	clientErr  error
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			clientErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if clientErr != nil {
			log.Fatalf("Failed to create maps client: %v", clientErr)
		}
	})
	return mapsClient, clientErr
}

// GeocodeAddress forward-geocodes an address string.
func GeocodeAddress(address string) ([]maps.GeocodingResult, error) {
	client, err := InitMapsClient()
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}

	req := &maps.GeocodingRequest{
		Address: address,
	}

	results, err := client.Geocode(context.Background(), req)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// LookupPoint geocodes an address and returns the first hit's coordinate.
// The shelter backfill only needs one plausible point, not the candidates.
func LookupPoint(address string) (lat, lng float64, ok bool) {
	results, err := GeocodeAddress(address)
	if err != nil {
		log.Printf("Failed to geocode %s: %v", address, err)
		return 0, 0, false
	}
	if len(results) == 0 {
		log.Printf("No geocode results for %s", address)
		return 0, 0, false
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, true
}
