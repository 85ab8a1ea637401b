package service

type EventType string

const (
	EventSessionUpdated  EventType = "session.updated"
	EventSessionClosed   EventType = "session.closed"
	EventMatchCommitted  EventType = "match.committed"
	EventResultRecorded  EventType = "result.recorded"
	EventCardSaved       EventType = "card.saved"
	EventCardLoaded      EventType = "card.loaded"
	EventCardDeleted     EventType = "card.deleted"
	EventSettingsChanged EventType = "settings.changed"
	EventRosterChanged   EventType = "roster.changed"
)

// Event is pushed to live clients. Session is empty for events every client should see.
type Event struct {
	Type    EventType `json:"type"`
	Session string    `json:"session,omitempty"`
	Data    any       `json:"data,omitempty"`
}

// Publisher fans events out to subscribers. Publish must not block.
type Publisher interface {
	Publish(Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
