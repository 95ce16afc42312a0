package regions

import "testing"

func TestResolveAddress(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"state name", "14 Marina Road, Lagos Island, Lagos", "Lagos"},
		{"uppercase", "LAGOS MAINLAND", "Lagos"},
		{"capital alias", "Garki District, Abuja", "Federal Capital Territory"},
		{"fct shorthand", "Phase 2, FCT", "Federal Capital Territory"},
		{"two-word state", "Uyo, Akwa Ibom", "Akwa Ibom"},
		{"capital city", "Port Harcourt waterfront", "Rivers"},
		{"country suffix does not hit Niger", "Ibadan, Oyo, Nigeria", "Oyo"},
		{"niger state by capital", "Minna town centre", "Niger"},
		{"unmatchable", "1600 Pennsylvania Avenue", Fallback},
		{"whitespace only", "   ", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveAddress(tt.address); got != tt.want {
				t.Errorf("ResolveAddress(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestResolvePoint(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name  string
		point Point
		want  string
	}{
		{"kano city", Point{12.00, 8.52}, "Kano"},
		{"ikeja", Point{6.52, 3.37}, "Lagos"},
		{"abuja", Point{9.06, 7.49}, "Federal Capital Territory"},
		{"maiduguri", Point{11.83, 13.15}, "Borno"},
		{"offshore", Point{2.0, 2.0}, Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.point, ""); got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.point, got, tt.want)
			}
		})
	}
}

func TestResolveFallbackNeverTestsGeometryOnNullIsland(t *testing.T) {
	r := NewResolver()
	// (0,0) with no address must land in the fallback without touching a
	// single boundary, even though some box could theoretically claim it.
	if got := r.Resolve(Point{0, 0}, ""); got != Fallback {
		t.Fatalf("Resolve(0,0) = %q, want fallback %q", got, Fallback)
	}
}

func TestResolveAddressWinsOverPoint(t *testing.T) {
	r := NewResolver()
	// Address carries intent; a stale GPS fix in another state must lose.
	got := r.Resolve(Point{12.00, 8.52}, "Ikorodu, Lagos")
	if got != "Lagos" {
		t.Fatalf("Resolve(kano point, lagos address) = %q, want Lagos", got)
	}
}

func TestResolveMemoizesAddresses(t *testing.T) {
	r := NewResolver()
	addr := "Wuse Market, Abuja"
	first := r.ResolveAddress(addr)

	r.mu.Lock()
	_, cached := r.memo["wuse market, abuja"]
	r.mu.Unlock()
	if !cached {
		t.Fatal("expected address to be memoized after first resolution")
	}

	if second := r.ResolveAddress(addr); second != first {
		t.Fatalf("memoized resolution changed: %q then %q", first, second)
	}
}

func TestCatalogShape(t *testing.T) {
	if len(Catalog) != 37 {
		t.Fatalf("catalog has %d regions, want 37", len(Catalog))
	}
	seen := map[string]bool{}
	for _, reg := range Catalog {
		if seen[reg.Name] {
			t.Errorf("duplicate region %q", reg.Name)
		}
		seen[reg.Name] = true
		if len(reg.Terms) == 0 {
			t.Errorf("region %q has no match terms", reg.Name)
		}
		if len(reg.Boundary) < 3 {
			t.Errorf("region %q boundary is not a ring", reg.Name)
		}
	}
	if !seen[Fallback] {
		t.Fatalf("fallback region %q missing from catalog", Fallback)
	}
}
