package summarization

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sashabaranov/go-openai"

	"go-lifeline/db"
	"go-lifeline/types"
)

const maxItemsForSummary = 40
const maxPromptLength = 12000 // rough character limit for the prompt

// GenerateRegionSummaries writes a short situation summary for every
// high-risk region in the frame, built from that region's recent activity.
// Regions run concurrently; a region whose summary fails is skipped, the
// next cycle retries it.
func GenerateRegionSummaries(
	ctx context.Context,
	frame types.DashboardFrame,
	firestoreClient *firestore.Client,
	openaiClient *openai.Client,
) error {
	var high []types.RegionAggregate
	for _, agg := range frame.Regions {
		if agg.RiskLevel == types.RiskHigh {
			high = append(high, agg)
		}
	}
	log.Printf("Starting summary generation for %d high-risk regions...", len(high))

	var wg sync.WaitGroup
	for i := range high {
		wg.Add(1)
		go func(agg types.RegionAggregate) {
			defer wg.Done()

			material := collectActivity(frame.Activity, agg.Name)
			if material == "" {
				log.Printf("No recent activity for %s, skipping summary.", agg.Name)
				return
			}

			summary, err := callOpenAISummary(ctx, agg, material, openaiClient)
			if err != nil {
				log.Printf("Error getting summary for %s: %v. Skipping.", agg.Name, err)
				return
			}

			generatedAt := time.Now().UTC().Format(time.RFC3339)
			if err := db.SaveRegionSummary(ctx, firestoreClient, agg.Name, summary, generatedAt); err != nil {
				log.Printf("Error saving summary for %s: %v", agg.Name, err)
				return
			}
			log.Printf("Saved situation summary for %s.", agg.Name)
		}(high[i])
	}
	wg.Wait()

	log.Println("Summary generation finished.")
	return nil
}

func collectActivity(items []types.ActivityItem, region string) string {
	var lines []string
	for _, it := range items {
		if it.Region != region {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", it.Time.Format(time.RFC3339), it.Title, it.Description))
		if len(lines) >= maxItemsForSummary {
			break
		}
	}
	joined := strings.Join(lines, "\n")
	if len(joined) > maxPromptLength {
		joined = joined[:maxPromptLength]
	}
	return joined
}

func callOpenAISummary(ctx context.Context, agg types.RegionAggregate, material string, client *openai.Client) (string, error) {
	prompt := fmt.Sprintf(
		"You are drafting a situation summary for emergency response operators.\n"+
			"Region: %s. Displaced persons: %d. Shelter occupancy: %d of %d. Open critical incidents: %d.\n"+
			"Recent activity:\n%s\n\n"+
			"Write 3-4 factual sentences. No speculation, no advice.",
		agg.Name, agg.DisplacedCount, agg.OccupiedCapacity, agg.TotalCapacity, agg.CriticalAlerts, material,
	)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 220,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
