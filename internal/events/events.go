package events

import "context"

// StreamPortal carries every workspace change.
const StreamPortal = "events:portal"

// Event types
const (
	EventApplicationCreated   = "application_created"
	EventApplicationAccepted  = "application_accepted"
	EventCollaborationUpdated = "collaboration_updated"
	EventSocialAccountChanged = "social_account_changed"
)

type Event struct {
	Type      string         `json:"type"`
	UserEmail string         `json:"user_email"`
	Payload   map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
