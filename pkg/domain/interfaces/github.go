package interfaces

import (
	"context"

	"github.com/m-mizutani/relprune/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListReleases returns every release of the repository, following pagination
	ListReleases(ctx context.Context, owner, repo string) ([]*model.Release, error)

	// DeleteRelease deletes a release object by its ID
	DeleteRelease(ctx context.Context, owner, repo string, releaseID int64) error

	// DeleteTagRef deletes a git reference such as "tags/v1.0.0"
	DeleteTagRef(ctx context.Context, owner, repo, ref string) error
}
