package usecase

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// OutputPrereleases is the name of the output carrying the ordered prerelease list
const OutputPrereleases = "prereleases"

// DefaultConcurrency is used when PruneOptions.Concurrency is not positive
const DefaultConcurrency = 4

type pruneUseCase struct {
	githubClient interfaces.GitHubClient
	reporter     interfaces.OutputReporter
}

// NewPrune creates a new instance of PruneUseCase
func NewPrune(githubClient interfaces.GitHubClient, reporter interfaces.OutputReporter) interfaces.PruneUseCase {
	return &pruneUseCase{
		githubClient: githubClient,
		reporter:     reporter,
	}
}

// Prune runs fetch, selection, deletion and report in that order.
// Only fetch and selection failures are returned; deletion failures are collected in the result.
func (uc *pruneUseCase) Prune(ctx context.Context, target model.Target, opts model.PruneOptions) (*model.PruneResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Pruning prereleases",
		"repository", target.String(),
		"delete_tags", opts.DeleteTags,
		"dry_run", opts.DryRun,
		"invalid_tag", opts.InvalidTag,
		"report_scope", opts.ReportScope,
	)

	releases, err := uc.githubClient.ListReleases(ctx, target.Owner, target.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch releases",
			goerr.V("repository", target.String()),
			goerr.T(types.ErrTagFetch),
		)
	}

	logger.Info("Fetched releases",
		"repository", target.String(),
		"count", len(releases),
	)

	sel, err := SelectPrereleases(releases, opts.InvalidTag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select prereleases",
			goerr.V("repository", target.String()),
			goerr.T(types.ErrTagInvalidVersion),
		)
	}

	for _, r := range sel.Skipped {
		logger.Warn("Skipping prerelease with invalid version tag",
			"tag", r.TagName,
			"release_id", r.ID,
		)
	}

	if sel.Retained != nil {
		logger.Info("Retaining latest prerelease",
			"tag", sel.Retained.TagName,
			"outdated", len(sel.Deletable),
		)
	}

	result := &model.PruneResult{
		Target:    target,
		Selection: sel,
		DryRun:    opts.DryRun,
	}

	switch {
	case len(sel.Deletable) == 0:
		logger.Info("No outdated prereleases")
	case opts.Mutates():
		result.Deleted, result.Failures = uc.deleteAll(ctx, target, sel.Deletable, opts.Concurrency)
	case opts.DryRun:
		for _, r := range sel.Deletable {
			logger.Info("Dry run: would delete prerelease and tag",
				"tag", r.TagName,
				"release_id", r.ID,
				"delete_tags", opts.DeleteTags,
			)
		}
	default:
		logger.Info("Deletion disabled, reporting only",
			"outdated", len(sel.Deletable),
		)
	}

	switch opts.ReportScope {
	case types.ReportScopeOutdated:
		result.Report = model.ReportEntries(sel.Deletable)
	default:
		result.Report = model.ReportEntries(sel.Ordered)
	}

	raw, err := json.Marshal(result.Report)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode prereleases output")
	}
	if err := uc.reporter.SetOutput(OutputPrereleases, string(raw)); err != nil {
		return nil, goerr.Wrap(err, "failed to report prereleases output")
	}

	logger.Info("Prune completed",
		"repository", target.String(),
		"reported", len(result.Report),
		"deleted", len(result.Deleted),
		"failures", len(result.Failures),
	)

	return result, nil
}

// deleteAll removes every release object and its tag reference with at most concurrency calls in flight.
// A failure of one call neither stops the other call for the same release nor the other releases.
func (uc *pruneUseCase) deleteAll(ctx context.Context, target model.Target, releases []*model.Release, concurrency int) ([]*model.Release, []model.DeletionFailure) {
	logger := ctxlog.From(ctx)

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	failures := make([][]model.DeletionFailure, len(releases))
	var eg errgroup.Group
	eg.SetLimit(concurrency)

	for i, r := range releases {
		eg.Go(func() error {
			var itemFailures []model.DeletionFailure

			if err := uc.githubClient.DeleteRelease(ctx, target.Owner, target.Repo, r.ID); err != nil {
				itemFailures = append(itemFailures, model.DeletionFailure{Release: r, Kind: model.DeletionKindRelease, Err: err})
				logger.Error("Failed to delete release",
					"error", err,
					"tag", r.TagName,
					"release_id", r.ID,
				)
			} else {
				logger.Info("Deleted release", "tag", r.TagName, "release_id", r.ID)
			}

			if err := uc.githubClient.DeleteTagRef(ctx, target.Owner, target.Repo, r.TagRef()); err != nil {
				itemFailures = append(itemFailures, model.DeletionFailure{Release: r, Kind: model.DeletionKindTag, Err: err})
				logger.Error("Failed to delete tag reference",
					"error", err,
					"ref", r.TagRef(),
				)
			} else {
				logger.Info("Deleted tag reference", "ref", r.TagRef())
			}

			failures[i] = itemFailures

			return nil
		})
	}

	// goroutines never return an error
	_ = eg.Wait()

	var deleted []*model.Release
	var flat []model.DeletionFailure
	for i, r := range releases {
		if len(failures[i]) == 0 {
			deleted = append(deleted, r)
			continue
		}
		flat = append(flat, failures[i]...)
	}

	return deleted, flat
}
