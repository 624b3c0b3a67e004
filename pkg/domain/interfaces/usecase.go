package interfaces

import (
	"context"

	"github.com/m-mizutani/relprune/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// PruneUseCase defines the prerelease cleanup run
type PruneUseCase interface {
	// Prune fetches releases of target, deletes outdated prereleases as allowed by opts and reports the result
	Prune(ctx context.Context, target model.Target, opts model.PruneOptions) (*model.PruneResult, error)
}
