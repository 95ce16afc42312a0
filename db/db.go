package db

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// Collection names. The persistence layer is opaque to the engine; the rest
// of the code learns them only from here.
const (
	ColIncidents    = "incidents"
	ColPersons      = "displacedPersons"
	ColShelters     = "shelters"
	ColFieldReports = "fieldReports"
	ColSummaries    = "summaries"
)

// HashString hashes a given string using SHA-256 and returns its hex
// representation. Used for deterministic document IDs from report URIs.
func HashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// client is a singleton Firestore client instance. clientErr keeps a failed
// init visible to every caller, not just the one that triggered the once.
var (
	client     *firestore.Client
	clientErr  error
	clientOnce sync.Once
)

// InitFirestore initializes and returns a Firestore client.
func InitFirestore() (*firestore.Client, error) {
	clientOnce.Do(func() {
		// Decode credentials
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("failed to decode Firestore credentials: %w", err)
			return
		}

		opt := option.WithCredentialsJSON(creds)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			clientErr = fmt.Errorf("error initializing Firebase app: %w", err)
			return
		}

		client, clientErr = app.Firestore(context.Background())
	})

	return client, clientErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
