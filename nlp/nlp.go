package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"go-lifeline/types"
)

// languageClient is a singleton language client instance. clientErr keeps a
// failed init visible to every caller, not just the one that triggered the
// once.
var (
	languageClient *language.Client
	clientErr      error
	clientOnce     sync.Once
)

// AnalyzeSentiment scores the tone of a field report. The ingest pipeline
// keeps it as an urgency signal next to each raw report.
func AnalyzeSentiment(client *language.Client, text string) (types.Sentiment, error) {
	var sentiment types.Sentiment
	ctx := context.Background()
	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return sentiment, fmt.Errorf("AnalyzeSentiment error: %w", err)
	}

	sentiment.Score = resp.DocumentSentiment.Score
	sentiment.Magnitude = resp.DocumentSentiment.Magnitude

	return sentiment, nil
}

// AnalyzeEntities sends text to the Cloud Natural Language API and returns
// the named entities found. Ingest only cares about ADDRESS and LOCATION
// entities, but the full list comes back for the audit trail.
func AnalyzeEntities(client *language.Client, text string) ([]types.Entity, error) {
	ctx := context.Background()
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	var entities []types.Entity
	for _, e := range resp.Entities {
		var mentions []types.EntityMention
		for _, m := range e.Mentions {
			mentions = append(mentions, types.EntityMention{
				Content:     m.Text.Content,
				BeginOffset: m.Text.BeginOffset,
				Probability: m.Probability,
			})
		}
		md := make(map[string]string)
		for k, v := range e.Metadata {
			md[k] = v
		}
		entities = append(entities, types.Entity{
			Name:     e.Name,
			Type:     e.Type.String(),
			Metadata: md,
			Mentions: mentions,
		})
	}
	return entities, nil
}

// FirstPlace returns the first ADDRESS or LOCATION entity name, if any.
func FirstPlace(entities []types.Entity) string {
	for _, e := range entities {
		if e.Type == "ADDRESS" || e.Type == "LOCATION" {
			return e.Name
		}
	}
	return ""
}

// InitLanguageClient initializes and returns a language client.
func InitLanguageClient() (*language.Client, error) {
	clientOnce.Do(func() {
		// Decode credentials
		encodedCreds := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("failed to decode Natural Language credentials: %w", err)
			return
		}

		opt := option.WithCredentialsJSON(creds)
		languageClient, clientErr = language.NewClient(context.Background(), opt)
	})

	return languageClient, clientErr
}

func CloseLanguageClient() {
	if languageClient != nil {
		languageClient.Close()
	}
}
