package cronjobs

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	language "cloud.google.com/go/language/apiv2"
	"github.com/robfig/cron/v3"
	"github.com/sashabaranov/go-openai"
	"googlemaps.github.io/maps"

	"go-lifeline/db"
	"go-lifeline/engine"
	"go-lifeline/geocode"
	"go-lifeline/reports"
	"go-lifeline/summarization"
)

// Curated public feeds that act as reporting channels. Staggered a couple
// of minutes apart so the pulls don't pile up on the same tick.
var reportFeeds = []struct {
	Name     string
	Schedule string
	URI      string
}{
	{"Flood Reports", "*/10 * * * *", "at://did:plc:lifeline0psfeed/app.bsky.feed.generator/floodwatch"},
	{"Fire Reports", "2-59/10 * * * *", "at://did:plc:lifeline0psfeed/app.bsky.feed.generator/firewatch"},
	{"Security Reports", "4-59/10 * * * *", "at://did:plc:lifeline0psfeed/app.bsky.feed.generator/secwatch"},
}

// InitCronJobs schedules the background jobs: report-feed polling, shelter
// geocode backfill, and hourly situation summaries. nlpClient, openaiClient
// and mapsClient may be nil; jobs that need a missing client are not
// scheduled at all.
func InitCronJobs(
	firestoreClient *firestore.Client,
	nlpClient *language.Client,
	openaiClient *openai.Client,
	mapsClient *maps.Client,
	eng *engine.Engine,
) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	for _, feed := range reportFeeds {
		feed := feed
		_, err := c.AddFunc(feed.Schedule, func() {
			log.Printf("CronJob: %s running", feed.Name)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			out, err := reports.FetchFeed(ctx, reports.FeedParams{URI: feed.URI, Limit: 25})
			if err != nil {
				log.Printf("Error fetching %s: %v", feed.Name, err)
				return
			}
			reports.IngestFeed(ctx, out, firestoreClient, nlpClient)
		})
		if err != nil {
			log.Printf("Error scheduling %s: %v", feed.Name, err)
		}
	}

	// Geocode backfill: shelters registered with an address but no point.
	// Skipped entirely without a maps client.
	if mapsClient != nil {
		_, err := c.AddFunc("*/30 * * * *", func() {
			log.Println("CronJob: Shelter geocode backfill running")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			shelters, err := db.SheltersMissingGeo(ctx, firestoreClient)
			if err != nil {
				log.Printf("Error listing shelters for backfill: %v", err)
				return
			}
			for _, sh := range shelters {
				lat, lng, ok := geocode.LookupPoint(sh.Location.Address)
				if !ok {
					continue
				}
				if err := db.UpdateShelterGeo(ctx, firestoreClient, sh.ID, lat, lng); err != nil {
					log.Printf("Error updating shelter %s: %v", sh.ID, err)
				}
			}
		})
		if err != nil {
			log.Println("Error scheduling geocode backfill:", err)
		}
	} else {
		log.Println("No maps client, skipping shelter geocode backfill job")
	}

	// Hourly situation summaries for high-risk regions.
	_, err := c.AddFunc("0 * * * *", func() {
		if openaiClient == nil {
			return
		}
		frame, ok := eng.LatestFrame()
		if !ok {
			log.Println("CronJob: summaries skipped, no frame yet")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := summarization.GenerateRegionSummaries(ctx, frame, firestoreClient, openaiClient); err != nil {
			log.Printf("Error generating summaries: %v", err)
		}
	})
	if err != nil {
		log.Println("Error scheduling summaries:", err)
	}

	c.Start()
	return c
}
