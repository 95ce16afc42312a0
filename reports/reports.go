// Package reports pulls public field reports into the incidents collection.
// One of the external reporting channels is a set of curated public feeds;
// each post gets its location extracted, its emergency type classified, and
// lands as a transmitting incident for the operators to triage.
package reports

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	language "cloud.google.com/go/language/apiv2"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/google/uuid"

	"go-lifeline/db"
	"go-lifeline/nlp"
	"go-lifeline/types"
)

const feedMethod = "app.bsky.feed.getFeed"

// FeedParams identifies one curated feed to poll.
type FeedParams struct {
	URI   string
	Limit int
}

// FetchFeed fetches a hydrated feed page from the public endpoint.
func FetchFeed(ctx context.Context, p FeedParams) (types.FeedResponse, error) {
	client := &xrpc.Client{
		Client: &http.Client{Timeout: 10 * time.Second},
		Host:   "https://public.api.bsky.app", // public endpoint for unauthenticated requests
	}

	limit := 10
	if p.Limit != 0 {
		limit = p.Limit
	}
	params := map[string]interface{}{
		"feed":  p.URI,
		"limit": limit,
	}

	var out types.FeedResponse
	if err := client.Do(ctx, xrpc.Query, "json", feedMethod, params, nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

// IngestFeed turns every post of a feed page into an incident document.
// Posts are processed concurrently; a post that fails entity extraction is
// still saved, it just resolves through the fallback region later.
func IngestFeed(ctx context.Context, out types.FeedResponse, firestoreClient *firestore.Client, nlpClient *language.Client) {
	var wg sync.WaitGroup
	for _, entry := range out.Feed {
		if entry.Post.URI == "" {
			continue
		}
		post := entry.Post
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ingestPost(ctx, post, firestoreClient, nlpClient); err != nil {
				log.Printf("reports: ingest %s failed: %v", post.URI, err)
			}
		}()
	}
	wg.Wait()
}

func ingestPost(ctx context.Context, post types.Post, firestoreClient *firestore.Client, nlpClient *language.Client) error {
	text := post.Record.Text

	var address string
	var sentiment types.Sentiment
	if nlpClient != nil {
		entities, err := nlp.AnalyzeEntities(nlpClient, text)
		if err != nil {
			log.Printf("reports: entity extraction failed for %s: %v", post.URI, err)
		} else {
			address = nlp.FirstPlace(entities)
		}
		if s, err := nlp.AnalyzeSentiment(nlpClient, text); err == nil {
			sentiment = s
		}
	}

	ts, err := time.Parse(time.RFC3339Nano, post.Record.CreatedAt)
	if err != nil {
		ts = time.Now().UTC()
	}

	incident := types.Incident{
		ID:            uuid.NewString(),
		EmergencyType: ClassifyEmergencyType(text),
		Location:      types.Location{Address: address},
		Status:        types.StatusTransmitting,
		Timestamp:     ts,
	}

	report := types.FieldReport{
		URI:       post.URI,
		Handle:    post.Author.Handle,
		Text:      text,
		CreatedAt: post.Record.CreatedAt,
		Sentiment: sentiment,
	}

	return db.SaveIncidentReport(ctx, firestoreClient, incident, report)
}

// emergencyKeywords maps report vocabulary to emergency types, checked in
// order so the more specific phrases win.
var emergencyKeywords = []struct {
	Type  string
	Words []string
}{
	{"Flood", []string{"flood", "flooding", "overflow", "submerged"}},
	{"Fire", []string{"fire", "burning", "blaze", "inferno"}},
	{"Building Collapse", []string{"collapse", "collapsed building"}},
	{"Epidemic", []string{"outbreak", "cholera", "epidemic"}},
	{"Violence", []string{"attack", "gunmen", "explosion", "clash"}},
}

// ClassifyEmergencyType keyword-matches the report text. Reports that match
// nothing stay "Unclassified" and rely on the operator to retag them.
func ClassifyEmergencyType(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range emergencyKeywords {
		for _, w := range kw.Words {
			if strings.Contains(lower, w) {
				return kw.Type
			}
		}
	}
	return "Unclassified"
}
