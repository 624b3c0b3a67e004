package github

import (
	"context"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/model"
)

// EventProcessor turns raw GitHub webhook deliveries into model.WebhookEvent and hands them to the use case
type EventProcessor struct {
	webhookUC interfaces.WebhookUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(webhookUC interfaces.WebhookUseCase) *EventProcessor {
	return &EventProcessor{
		webhookUC: webhookUC,
	}
}

// ProcessEvent parses a webhook payload of eventType and processes it
func (p *EventProcessor) ProcessEvent(ctx context.Context, deliveryID, eventType string, body []byte) error {
	logger := ctxlog.From(ctx)

	payload, err := github.ParseWebHook(eventType, body)
	if err != nil {
		return goerr.Wrap(err, "invalid webhook payload",
			goerr.V("event_type", eventType),
			goerr.V("delivery_id", deliveryID),
		)
	}

	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.WebhookEventType(eventType),
		ReceivedAt: time.Now(),
	}

	switch e := payload.(type) {
	case *github.ReleaseEvent:
		event.Action = e.GetAction()
		event.Target = model.Target{
			Owner: e.GetRepo().GetOwner().GetLogin(),
			Repo:  e.GetRepo().GetName(),
		}
		event.TagName = e.GetRelease().GetTagName()
		event.Prerelease = e.GetRelease().GetPrerelease()
		event.Sender = e.GetSender().GetLogin()
	case *github.PingEvent:
		event.Type = model.EventTypePing
		logger.Info("Received ping", "hook_id", e.GetHookID(), "zen", e.GetZen())
	default:
		event.Type = model.EventTypeUnknown
	}

	return p.webhookUC.ProcessEvent(ctx, event)
}
