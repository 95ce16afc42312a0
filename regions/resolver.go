package regions

import (
	"strings"
	"sync"
)

// Resolver buckets points and free-text addresses into catalog regions.
// Resolution is pure; the only state is a memo table keyed by address,
// because person and shelter addresses repeat heavily between passes.
type Resolver struct {
	mu   sync.Mutex
	memo map[string]string
}

func NewResolver() *Resolver {
	return &Resolver{memo: make(map[string]string)}
}

// Resolve maps a point and/or address to a region name.
//
// Priority: address substring match in catalog order first, then
// point-in-polygon in catalog order, then the fallback region. An empty
// address and a (0,0) point never reach the geometry tests.
func (r *Resolver) Resolve(p Point, address string) string {
	if addr := strings.TrimSpace(address); addr != "" {
		return r.resolveAddress(addr)
	}
	if p.Lat != 0 || p.Lng != 0 {
		for _, reg := range Catalog {
			if pointInRing(p, reg.Boundary) {
				return reg.Name
			}
		}
	}
	return Fallback
}

// ResolveAddress is Resolve for entities that only carry an address string.
func (r *Resolver) ResolveAddress(address string) string {
	return r.Resolve(Point{}, address)
}

func (r *Resolver) resolveAddress(addr string) string {
	lower := strings.ToLower(addr)

	r.mu.Lock()
	if name, ok := r.memo[lower]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	name := Fallback
	for _, reg := range Catalog {
		if matchesTerms(lower, reg.Terms) {
			name = reg.Name
			break
		}
	}

	r.mu.Lock()
	r.memo[lower] = name
	r.mu.Unlock()
	return name
}

func matchesTerms(lowerAddr string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lowerAddr, t) {
			return true
		}
	}
	return false
}

// pointInRing is a standard ray cast against the closed ring. Vertices on
// an edge may land on either side; fine at bounding-box precision.
func pointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			crossLng := (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
			if p.Lng < crossLng {
				inside = !inside
			}
		}
	}
	return inside
}
