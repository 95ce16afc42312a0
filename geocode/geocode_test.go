package geocode

import (
	"testing"
)

func TestInitErrorSurvivesRepeatCalls(t *testing.T) {
	t.Setenv("MAPS_CREDENTIALS", "")

	// The singleton once only runs one time; the error must come back on
	// every call after it, not just the first.
	if _, err := InitMapsClient(); err == nil {
		t.Fatal("first init with no credentials returned nil error")
	}
	if _, err := InitMapsClient(); err == nil {
		t.Fatal("second init swallowed the stored error")
	}

	// Both wrappers must fail cleanly instead of dereferencing a nil client.
	if _, err := GeocodeAddress("Ikeja, Lagos"); err == nil {
		t.Fatal("GeocodeAddress returned nil error with no client")
	}
	if _, _, ok := LookupPoint("Ikeja, Lagos"); ok {
		t.Fatal("LookupPoint reported success with no client")
	}
	if _, _, ok := LookupPoint("Kano"); ok {
		t.Fatal("repeat LookupPoint reported success with no client")
	}
}
