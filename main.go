package main

import (
	"context"
	"fmt"
	"log"
	"os"

	language "cloud.google.com/go/language/apiv2"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
	"googlemaps.github.io/maps"

	"go-lifeline/cronjobs"
	"go-lifeline/db"
	"go-lifeline/engine"
	"go-lifeline/geocode"
	"go-lifeline/nlp"
	"go-lifeline/routes"
)

// logAlarm is the server-side stand-in for the browser's looping sound.
// The real playback happens in the client; here the events just get logged
// so an operator tailing the server sees the alarm state change.
type logAlarm struct{}

func (logAlarm) Play() error {
	log.Println("ALARM: looping alert sound started")
	return nil
}

func (logAlarm) Stop() {
	log.Println("ALARM: alert sound stopped")
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	viewer := engine.ViewerFromRole(os.Getenv("VIEWER_ROLE"), os.Getenv("VIEWER_REGION"))
	fmt.Printf("Viewer class: %s, region: %q\n", viewer.Class, viewer.Region)

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	// Natural Language client is optional; without it ingested reports skip
	// entity extraction and resolve through the fallback region.
	var nlpClient *language.Client
	if os.Getenv("NATURAL_LANGUAGE_CREDENTIALS") != "" {
		nlpClient, err = nlp.InitLanguageClient()
		if err != nil {
			log.Fatalf("Failed to create Natural Language client: %v", err)
		}
		defer nlp.CloseLanguageClient()
	}

	var openaiClient *openai.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
		openaiClient = openai.NewClient(apiKey)
	}

	// Maps client is optional too; without it the shelter geocode backfill
	// job is never scheduled.
	var mapsClient *maps.Client
	if os.Getenv("MAPS_CREDENTIALS") != "" {
		mapsClient, err = geocode.InitMapsClient()
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
	}

	alarm := engine.NewAlarmGate(logAlarm{})
	eng := engine.New(viewer, alarm, func(ctx context.Context, incidentID, field string) error {
		return db.MarkIncidentSeen(ctx, firestoreClient, incidentID, field)
	})

	// One context owns the engine and all three stream subscriptions;
	// cancelling it tears the group down together, alarm included.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go eng.Run(ctx)
	db.SubscribeCollections(ctx, firestoreClient, eng)

	// Initialize cron jobs
	c := cronjobs.InitCronJobs(firestoreClient, nlpClient, openaiClient, mapsClient, eng)
	defer c.Stop()

	r := routes.SetupRouter(eng)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
