package models

// CatalogItem is one entry of the immutable catalog document.
//
// The source document carries seed values for the mutable fields
// (watched, rating, comment, scheduled_date); the tracker treats those
// as the pre-overlay defaults and never writes them back to the catalog.
type CatalogItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Saga          string `json:"saga"`
	Synopsis      string `json:"synopsis,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ContentType   string `json:"content_type"`
	Universe      string `json:"universe"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	Watched       bool   `json:"watched"`
}

// WorkingItem is a catalog item merged with the user's progress overlay.
// Everything read-side (filters, stats, handlers, CLI) observes this shape.
type WorkingItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Saga          string `json:"saga"`
	Synopsis      string `json:"synopsis,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ContentType   string `json:"content_type"`
	Universe      string `json:"universe"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	Watched       bool   `json:"watched"`
}
