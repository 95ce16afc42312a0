package dedup

import (
	"testing"
	"time"

	"go-lifeline/types"
)

func incident(id, addr, etype string, ts time.Time) types.Incident {
	return types.Incident{
		ID:            id,
		EmergencyType: etype,
		Location:      types.Location{Address: addr},
		Status:        types.StatusActive,
		Timestamp:     ts,
	}
}

func TestDeduplicateWindow(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   []types.Incident
		want []string // surviving IDs, in order
	}{
		{
			name: "same signature inside window collapses",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a2", "Lagos", "Fire", base.Add(2*time.Second)),
			},
			want: []string{"a1"},
		},
		{
			name: "same signature outside window is two events",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a2", "Lagos", "Fire", base.Add(6*time.Second)),
			},
			want: []string{"a1", "a2"},
		},
		{
			name: "exactly at window boundary is kept",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a2", "Lagos", "Fire", base.Add(Window)),
			},
			want: []string{"a1", "a2"},
		},
		{
			name: "repeated id always drops",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a1", "Lagos", "Fire", base.Add(time.Minute)),
			},
			want: []string{"a1"},
		},
		{
			name: "different type same address survives",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a2", "Lagos", "Flood", base.Add(time.Second)),
			},
			want: []string{"a1", "a2"},
		},
		{
			name: "case-insensitive signature",
			in: []types.Incident{
				incident("a1", "Lagos", "Fire", base),
				incident("a2", "LAGOS", "FIRE", base.Add(time.Second)),
			},
			want: []string{"a1"},
		},
		{
			name: "out of order timestamps still inside window",
			in: []types.Incident{
				incident("a1", "Kano", "Flood", base.Add(3*time.Second)),
				incident("a2", "Kano", "Flood", base),
			},
			want: []string{"a1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d incidents, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSignatureFallsBackToCoordinates(t *testing.T) {
	base := time.Now().UTC()
	a := types.Incident{
		ID:            "p1",
		EmergencyType: "Fire",
		Location:      types.Location{Lat: 6.52, Lng: 3.37},
		Timestamp:     base,
	}
	b := a
	b.ID = "p2"
	b.Timestamp = base.Add(time.Second)

	if Signature(a) != "6.52,3.37|fire" {
		t.Fatalf("unexpected signature %q", Signature(a))
	}
	if got := Deduplicate([]types.Incident{a, b}); len(got) != 1 {
		t.Fatalf("coordinate-keyed duplicates not collapsed: %d survivors", len(got))
	}
}

func TestDeduplicateRebuildsTablesPerPass(t *testing.T) {
	base := time.Now().UTC()
	in := []types.Incident{incident("a1", "Lagos", "Fire", base)}

	// Two passes over the same snapshot must behave identically; no state
	// leaks between calls.
	if len(Deduplicate(in)) != 1 || len(Deduplicate(in)) != 1 {
		t.Fatal("dedup tables leaked state across passes")
	}
}
