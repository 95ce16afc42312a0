package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-lifeline/types"
)

// MarkIncidentSeen flips one seen flag on an incident document. Setting an
// already-true flag is a no-op write, so the operation is idempotent.
func MarkIncidentSeen(ctx context.Context, client *firestore.Client, incidentID, field string) error {
	_, err := client.Collection(ColIncidents).Doc(incidentID).Update(ctx, []firestore.Update{
		{Path: field, Value: true},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("incident %s not found: %w", incidentID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to mark incident %s seen: %w", incidentID, err)
	}
	return nil
}

// SaveIncidentReport writes an ingested incident plus the raw field report
// it came from. The report lands in its own collection keyed by the hashed
// source URI, so a re-fetched feed page never duplicates documents.
func SaveIncidentReport(ctx context.Context, client *firestore.Client, in types.Incident, report types.FieldReport) error {
	reportID := HashString(report.URI)

	// Skip reports we already ingested.
	_, err := client.Collection(ColFieldReports).Doc(reportID).Get(ctx)
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check field report %s: %w", reportID, err)
	}

	err = client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(client.Collection(ColIncidents).Doc(in.ID), in); err != nil {
			return fmt.Errorf("failed to set incident document: %w", err)
		}
		report.IncidentID = in.ID
		if err := tx.Set(client.Collection(ColFieldReports).Doc(reportID), report); err != nil {
			return fmt.Errorf("failed to set field report document: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("Transaction failed for report %s: %v", report.URI, err)
		return err
	}

	log.Printf("Saved incident %s from report %s", in.ID, report.URI)
	return nil
}

// SheltersMissingGeo returns shelters that have an address but no usable
// coordinate yet, candidates for the geocode backfill job.
func SheltersMissingGeo(ctx context.Context, client *firestore.Client) ([]types.Shelter, error) {
	var out []types.Shelter

	iter := client.Collection(ColShelters).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating shelters: %w", err)
		}
		data := doc.Data()
		loc := normalizeLocation(data)
		if loc.Address != "" && loc.IsZero() {
			out = append(out, types.Shelter{
				ID:                doc.Ref.ID,
				Location:          loc,
				Capacity:          anyInt(data["capacity"]),
				AvailableCapacity: anyInt(data["availableCapacity"]),
			})
		}
	}

	return out, nil
}

// UpdateShelterGeo writes a geocoded coordinate back onto a shelter doc.
func UpdateShelterGeo(ctx context.Context, client *firestore.Client, shelterID string, lat, lng float64) error {
	_, err := client.Collection(ColShelters).Doc(shelterID).Set(ctx, map[string]interface{}{
		"location": map[string]interface{}{"lat": lat, "lng": lng},
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update shelter %s geo: %w", shelterID, err)
	}
	return nil
}

// SaveRegionSummary stores one generated situation summary.
func SaveRegionSummary(ctx context.Context, client *firestore.Client, region, summary, generatedAt string) error {
	_, err := client.Collection(ColSummaries).Doc(HashString(region)).Set(ctx, map[string]interface{}{
		"region":      region,
		"summary":     summary,
		"generatedAt": generatedAt,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save summary for %s: %w", region, err)
	}
	return nil
}
