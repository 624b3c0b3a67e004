package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// ReleaseActionPublished is the release event action that triggers pruning
const ReleaseActionPublished = "published"

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., published)
	Target     Target           // Repository the event belongs to
	TagName    string           // Tag of the release in the event
	Prerelease bool             // Whether the released version is a prerelease
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
}

// IsSupportedEvent checks if the event should trigger a prune run
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypeRelease:
		return e.Action == ReleaseActionPublished && e.Target.Owner != "" && e.Target.Repo != ""
	default:
		return false
	}
}
