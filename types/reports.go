package types

// FeedResponse is the root of the public report feed API response.
type FeedResponse struct {
	Cursor string      `json:"cursor"`
	Feed   []FeedEntry `json:"feed"`
}

type FeedEntry struct {
	Post Post `json:"post"`
}

type Post struct {
	Author    Author `json:"author"`
	CID       string `json:"cid"`
	IndexedAt string `json:"indexedAt"`
	Record    Record `json:"record"`
	URI       string `json:"uri"`
}

type Author struct {
	DID         string `json:"did"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
}

// Record is the post content itself.
type Record struct {
	Type      string `json:"$type"`
	CreatedAt string `json:"createdAt"`
	Text      string `json:"text"`
}

// FieldReport is a raw report pulled from a public feed before it becomes an
// incident document. Kept around for audit next to the incident it produced.
type FieldReport struct {
	URI        string    `firestore:"uri" json:"uri"`
	Handle     string    `firestore:"handle" json:"handle"`
	Text       string    `firestore:"text" json:"text"`
	CreatedAt  string    `firestore:"createdAt" json:"createdAt"`
	IncidentID string    `firestore:"incidentId" json:"incidentId"`
	Sentiment  Sentiment `firestore:"sentiment" json:"sentiment"`
}
