package reports

import "testing"

func TestClassifyEmergencyType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Massive FLOODING along the riverbank, streets submerged", "Flood"},
		{"market on fire near the roundabout", "Fire"},
		{"three-storey building collapsed overnight", "Building Collapse"},
		{"cholera outbreak reported at the camp", "Epidemic"},
		{"gunmen attacked the convoy", "Violence"},
		{"roads blocked by fallen trees", "Unclassified"},
		{"", "Unclassified"},
		// Earlier table entries win when a report mentions both.
		{"fire broke out after the flood receded", "Flood"},
	}

	for _, tt := range tests {
		if got := ClassifyEmergencyType(tt.text); got != tt.want {
			t.Errorf("ClassifyEmergencyType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
