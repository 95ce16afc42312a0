package db

import (
	"testing"
	"time"

	"go-lifeline/types"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want types.Location
	}{
		{
			name: "nested canonical fields",
			data: map[string]interface{}{"location": map[string]interface{}{
				"lat": 6.52, "lng": 3.37, "address": "Ikeja, Lagos",
			}},
			want: types.Location{Lat: 6.52, Lng: 3.37, Address: "Ikeja, Lagos"},
		},
		{
			name: "flat root fields",
			data: map[string]interface{}{"lat": 12.0, "lng": 8.52, "address": "Kano"},
			want: types.Location{Lat: 12.0, Lng: 8.52, Address: "Kano"},
		},
		{
			name: "latitude longitude variants",
			data: map[string]interface{}{"latitude": 9.06, "longitude": 7.49},
			want: types.Location{Lat: 9.06, Lng: 7.49},
		},
		{
			name: "underscore variants with formattedAddress",
			data: map[string]interface{}{"location": map[string]interface{}{
				"_lat": 11.83, "_lng": 13.15, "formattedAddress": "Maiduguri, Borno",
			}},
			want: types.Location{Lat: 11.83, Lng: 13.15, Address: "Maiduguri, Borno"},
		},
		{
			name: "long and addr variants",
			data: map[string]interface{}{"lat": 4.8, "long": 7.0, "addr": "Port Harcourt"},
			want: types.Location{Lat: 4.8, Lng: 7.0, Address: "Port Harcourt"},
		},
		{
			name: "integer coordinates from older writers",
			data: map[string]interface{}{"lat": int64(7), "lng": int64(5)},
			want: types.Location{Lat: 7, Lng: 5},
		},
		{
			name: "canonical key wins over variant",
			data: map[string]interface{}{"lat": 6.5, "latitude": 99.0, "lng": 3.3},
			want: types.Location{Lat: 6.5, Lng: 3.3},
		},
		{
			name: "empty document",
			data: map[string]interface{}{},
			want: types.Location{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLocation(tt.data); got != tt.want {
				t.Errorf("normalizeLocation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnyTime(t *testing.T) {
	ref := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want time.Time
	}{
		{"native timestamp", ref, ref},
		{"rfc3339 string", "2026-03-14T09:00:00Z", ref},
		{"rfc3339 with nanos", "2026-03-14T09:00:00.000000000Z", ref},
		{"epoch millis int", ref.UnixMilli(), ref},
		{"epoch millis float", float64(ref.UnixMilli()), ref},
		{"garbage string", "yesterday-ish", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anyTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("anyTime(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
