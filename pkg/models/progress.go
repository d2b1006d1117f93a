package models

// ProgressRecord holds the four user-mutable fields for one catalog item.
// A full map of these, keyed by item id, is the only durable state.
type ProgressRecord struct {
	Watched       bool   `json:"watched"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}
