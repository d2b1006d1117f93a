package models

import "time"

// Message is one entry of the assistant dialogue log.
type Message struct {
	ID     int64     `json:"id"`
	Sender string    `json:"sender"` // "user" or "assistant"
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}
