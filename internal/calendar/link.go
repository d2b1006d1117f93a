// Package calendar builds Google Calendar deep links for scheduled
// watch dates. Events always occupy the fixed evening slot, 20:00 to
// 22:00 local time.
package calendar

import (
	"fmt"
	"net/url"
	"time"

	"watchhub/pkg/models"
)

const renderURL = "https://calendar.google.com/calendar/render"

// EventLink returns a calendar event URL for watching item on the given
// ISO date (YYYY-MM-DD).
func EventLink(item models.WorkingItem, date string) (string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 20, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour)

	details := fmt.Sprintf("Maratón - %s\n%s", item.Saga, item.ContentType)
	if item.Comment != "" {
		details += "\n\n" + item.Comment
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", "🎬 "+item.Title)
	params.Set("dates", formatSlot(start)+"/"+formatSlot(end))
	params.Set("details", details)
	params.Set("location", "Maratón en casa")

	return renderURL + "?" + params.Encode(), nil
}

func formatSlot(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
