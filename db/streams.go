package db

import (
	"context"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-lifeline/engine"
	"go-lifeline/types"
)

// SubscribeCollections opens the three live-collection listeners and pumps
// full snapshots into the engine. All three run under ctx and are released
// together when it is cancelled; that is the group-teardown contract the
// dashboard relies on.
func SubscribeCollections(ctx context.Context, client *firestore.Client, eng *engine.Engine) {
	go watchIncidents(ctx, client, eng)
	go watchPersons(ctx, client, eng)
	go watchShelters(ctx, client, eng)
}

func watchIncidents(ctx context.Context, client *firestore.Client, eng *engine.Engine) {
	iter := client.Collection(ColIncidents).Snapshots(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err != nil {
			failStream(ctx, eng, engine.StreamIncidents, err)
			return
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("db: reading incidents snapshot: %v", err)
			continue
		}
		incidents := make([]types.Incident, 0, len(docs))
		for _, doc := range docs {
			incidents = append(incidents, docToIncident(doc))
		}
		eng.Push(engine.Snapshot{Stream: engine.StreamIncidents, Incidents: incidents})
	}
}

func watchPersons(ctx context.Context, client *firestore.Client, eng *engine.Engine) {
	iter := client.Collection(ColPersons).Snapshots(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err != nil {
			failStream(ctx, eng, engine.StreamPersons, err)
			return
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("db: reading persons snapshot: %v", err)
			continue
		}
		persons := make([]types.DisplacedPerson, 0, len(docs))
		for _, doc := range docs {
			data := doc.Data()
			persons = append(persons, types.DisplacedPerson{
				ID:                doc.Ref.ID,
				CurrentLocation:   anyString(data["currentLocation"]),
				AssignedShelterID: anyString(data["assignedShelterId"]),
			})
		}
		eng.Push(engine.Snapshot{Stream: engine.StreamPersons, Persons: persons})
	}
}

func watchShelters(ctx context.Context, client *firestore.Client, eng *engine.Engine) {
	iter := client.Collection(ColShelters).Snapshots(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err != nil {
			failStream(ctx, eng, engine.StreamShelters, err)
			return
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("db: reading shelters snapshot: %v", err)
			continue
		}
		shelters := make([]types.Shelter, 0, len(docs))
		for _, doc := range docs {
			data := doc.Data()
			shelters = append(shelters, types.Shelter{
				ID:                doc.Ref.ID,
				Location:          normalizeLocation(data),
				Capacity:          anyInt(data["capacity"]),
				AvailableCapacity: anyInt(data["availableCapacity"]),
			})
		}
		eng.Push(engine.Snapshot{Stream: engine.StreamShelters, Shelters: shelters})
	}
}

// failStream classifies a dead subscription for the engine. A cancelled
// context is normal teardown, not a failure.
func failStream(ctx context.Context, eng *engine.Engine, id engine.StreamID, err error) {
	if ctx.Err() != nil || status.Code(err) == codes.Canceled {
		return
	}
	f := engine.StreamFailure{Stream: id, Err: err}
	switch status.Code(err) {
	case codes.PermissionDenied:
		f.PermissionDenied = true
	case codes.FailedPrecondition:
		// Firestore reports a missing composite index this way; advisory,
		// not fatal.
		if strings.Contains(strings.ToLower(err.Error()), "index") {
			f.IndexAdvisory = err.Error()
		}
	}
	eng.Fail(f)
}

// docToIncident normalizes a raw incident document. The reporting channels
// disagree on geo field names (lat/latitude/_lat and friends), so the
// variants are flattened here and nothing downstream ever branches on them.
func docToIncident(doc *firestore.DocumentSnapshot) types.Incident {
	data := doc.Data()

	in := types.Incident{
		ID:                  doc.Ref.ID,
		EmergencyType:       anyString(data["emergencyType"]),
		Location:            normalizeLocation(data),
		Status:              types.IncidentStatus(anyString(data["status"])),
		Timestamp:           anyTime(data["timestamp"]),
		SeenByOperator:      anyBool(data["seenByOperator"]),
		SeenBySuperOperator: anyBool(data["seenBySuperOperator"]),
	}
	if in.EmergencyType == "" {
		in.EmergencyType = anyString(data["type"])
	}
	return in
}

// normalizeLocation digs the canonical {lat,lng,address} out of a document,
// whether the fields live nested under "location" or flat on the root.
func normalizeLocation(data map[string]interface{}) types.Location {
	src := data
	if nested, ok := data["location"].(map[string]interface{}); ok {
		src = nested
	}

	loc := types.Location{}
	for _, key := range []string{"lat", "latitude", "_lat"} {
		if v, ok := anyFloat(src[key]); ok {
			loc.Lat = v
			break
		}
	}
	for _, key := range []string{"lng", "long", "longitude", "_lng"} {
		if v, ok := anyFloat(src[key]); ok {
			loc.Lng = v
			break
		}
	}
	for _, key := range []string{"address", "formattedAddress", "addr"} {
		if s := anyString(src[key]); s != "" {
			loc.Address = s
			break
		}
	}
	return loc
}

func anyFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func anyInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func anyString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func anyBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// anyTime accepts the timestamp shapes seen in the wild: native Firestore
// timestamps, RFC3339 strings, and epoch milliseconds.
func anyTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02T15:04:05Z", t); err == nil {
			return parsed
		}
	case int64:
		return time.UnixMilli(t).UTC()
	case float64:
		return time.UnixMilli(int64(t)).UTC()
	}
	return time.Time{}
}
