package assistant

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"watchhub/pkg/models"
)

var ErrEmptyQuery = errors.New("assistant: empty query")

// Assistant ties the keyword router to the session log. It starts idle
// (suggestions shown, no dialogue) and becomes active on the first Ask;
// the transition is one-way and not persisted.
type Assistant struct {
	router   *Router
	log      *Log
	delay    time.Duration
	snapshot func() []models.WorkingItem

	mu     sync.Mutex
	active bool
}

// New builds an Assistant over the given collection source. rng may be
// nil for a time-seeded source; delay is the artificial pause before a
// reply becomes visible.
func New(snapshot func() []models.WorkingItem, rng *rand.Rand, delay time.Duration) *Assistant {
	return &Assistant{
		router:   NewRouter(rng),
		log:      NewLog(),
		delay:    delay,
		snapshot: snapshot,
	}
}

// Ask logs the query, computes the routed reply after the configured
// delay, logs it, and returns both entries in log order.
func (a *Assistant) Ask(text string) (models.Message, models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, models.Message{}, ErrEmptyQuery
	}

	a.mu.Lock()
	a.active = true
	a.mu.Unlock()

	userMsg := a.log.Append(SenderUser, text)

	if a.delay > 0 {
		time.Sleep(a.delay)
	}

	reply := a.router.Route(text, a.snapshot())
	replyMsg := a.log.Append(SenderAssistant, reply)

	return userMsg, replyMsg, nil
}

// Active reports whether a question has been asked this session.
func (a *Assistant) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *Assistant) Messages() []models.Message {
	return a.log.All()
}

func (a *Assistant) SessionID() string {
	return a.log.SessionID()
}
