package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"watchhub/pkg/models"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Log is the append-only dialogue log for one session. Ids are
// strictly increasing; entries are never reordered or pruned.
type Log struct {
	mu        sync.Mutex
	sessionID string
	nextID    int64
	messages  []models.Message
}

func NewLog() *Log {
	return &Log{
		sessionID: uuid.NewString(),
		nextID:    1,
	}
}

func (l *Log) SessionID() string {
	return l.sessionID
}

// Append records a message and returns it with its assigned id.
func (l *Log) Append(sender, text string) models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := models.Message{
		ID:     l.nextID,
		Sender: sender,
		Text:   text,
		At:     time.Now().UTC(),
	}
	l.nextID++
	l.messages = append(l.messages, msg)
	return msg
}

// All returns a copy of the log in append order.
func (l *Log) All() []models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Message(nil), l.messages...)
}

// Len reports how many messages have been logged.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
