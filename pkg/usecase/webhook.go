package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/utils/async"
)

// Dispatcher runs a task outside of the request lifecycle
type Dispatcher func(ctx context.Context, task string, handler func(ctx context.Context) error)

type webhookUseCase struct {
	pruneUC  interfaces.PruneUseCase
	opts     model.PruneOptions
	dispatch Dispatcher
}

// WebhookOption is a functional option for webhookUseCase
type WebhookOption func(*webhookUseCase)

// WithDispatcher replaces async.Dispatch, mainly for tests
func WithDispatcher(d Dispatcher) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = d
	}
}

// NewWebhook creates a new instance of WebhookUseCase that prunes the repository of every published release
func NewWebhook(pruneUC interfaces.PruneUseCase, opts model.PruneOptions, options ...WebhookOption) *webhookUseCase {
	uc := &webhookUseCase{
		pruneUC:  pruneUC,
		opts:     opts,
		dispatch: async.Dispatch,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// ProcessEvent processes a webhook event.
// Pruning runs asynchronously so GitHub receives the response before its delivery timeout.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Target.String(),
		"tag", event.TagName,
		"prerelease", event.Prerelease,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring webhook event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	target := event.Target
	uc.dispatch(ctx, "prune", func(ctx context.Context) error {
		_, err := uc.pruneUC.Prune(ctx, target, uc.opts)
		return err
	})

	return nil
}
