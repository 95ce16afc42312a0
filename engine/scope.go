package engine

import (
	"go-lifeline/regions"
	"go-lifeline/types"
)

// Viewer is who this dashboard instance renders for. Super-operators are
// globally scoped; operators may be pinned to a single region.
type Viewer struct {
	Class  types.ViewerClass
	Region string // empty means unscoped
}

// ViewerFromRole builds a Viewer from the role string the auth layer hands
// us. Anything that is not the super class is a plain operator.
func ViewerFromRole(role, region string) Viewer {
	if role == string(types.ViewerSuperOperator) {
		return Viewer{Class: types.ViewerSuperOperator}
	}
	return Viewer{Class: types.ViewerOperator, Region: region}
}

// scoped reports whether entity filtering applies. An operator with no
// region set falls through to unfiltered; known gap, kept as upstream left
// it until product decides otherwise.
func (v Viewer) scoped() bool {
	return v.Class != types.ViewerSuperOperator && v.Region != ""
}

// applyScope narrows the three snapshots to the viewer's region. Incidents
// match by address-or-point, persons and shelters by their address fields.
func applyScope(v Viewer, r *regions.Resolver,
	incidents []types.Incident, persons []types.DisplacedPerson, shelters []types.Shelter,
) ([]types.Incident, []types.DisplacedPerson, []types.Shelter) {
	if !v.scoped() {
		return incidents, persons, shelters
	}

	var inOut []types.Incident
	for _, in := range incidents {
		p := regions.Point{Lat: in.Location.Lat, Lng: in.Location.Lng}
		if r.Resolve(p, in.Location.Address) == v.Region {
			inOut = append(inOut, in)
		}
	}

	var pOut []types.DisplacedPerson
	for _, dp := range persons {
		if r.ResolveAddress(dp.CurrentLocation) == v.Region {
			pOut = append(pOut, dp)
		}
	}

	var sOut []types.Shelter
	for _, sh := range shelters {
		p := regions.Point{Lat: sh.Location.Lat, Lng: sh.Location.Lng}
		if r.Resolve(p, sh.Location.Address) == v.Region {
			sOut = append(sOut, sh)
		}
	}

	return inOut, pOut, sOut
}
