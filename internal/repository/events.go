package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

// EventRepository manages the append-only event log. Events are immutable
// once appended; there is no edit or delete.
type EventRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(store *Store, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		store:  store,
		logger: logger,
	}
}

// EventFilter narrows a log listing. Zero values mean "no constraint".
// From and To are inclusive ISO dates.
type EventFilter struct {
	Type model.EventType
	From string
	To   string
}

// Append validates the envelope and appends the event to the log.
func (r *EventRepository) Append(ctx context.Context, event *model.Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if _, err := time.Parse(model.DateLayout, event.Date); err != nil {
		return fmt.Errorf("event date must be an ISO date: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	r.store.mu.Lock()
	r.store.events = append(r.store.events, *event)
	r.store.mu.Unlock()

	r.logger.Info("event appended",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("date", event.Date),
	)

	return nil
}

// List returns the events matching the filter, ordered by date then
// insertion order.
func (r *EventRepository) List(ctx context.Context, filter EventFilter) []model.Event {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []model.Event
	for _, e := range r.store.events {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.From != "" && e.Date < filter.From {
			continue
		}
		if filter.To != "" && e.Date > filter.To {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ListByDate returns every event carrying the given ISO date.
func (r *EventRepository) ListByDate(ctx context.Context, date string) []model.Event {
	return r.List(ctx, EventFilter{From: date, To: date})
}

// CountByType counts all events of the given variant over the whole log.
func (r *EventRepository) CountByType(ctx context.Context, t model.EventType) int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, e := range r.store.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
