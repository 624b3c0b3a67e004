package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/cli/config"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/infra/actions"
	"github.com/m-mizutani/relprune/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// pruneDeps lets tests replace the GitHub client and output destinations
type pruneDeps struct {
	newClient func(cfg *config.GitHub) (interfaces.GitHubClient, error)
	stdout    io.Writer
	stderr    io.Writer
}

func defaultPruneDeps() *pruneDeps {
	return &pruneDeps{
		newClient: func(cfg *config.GitHub) (interfaces.GitHubClient, error) {
			return cfg.NewClient()
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func cmdPrune() *cli.Command {
	return newPruneCommand(defaultPruneDeps())
}

func newPruneCommand(deps *pruneDeps) *cli.Command {
	var (
		githubCfg config.GitHub
		pruneCfg  config.Prune
		actionCfg config.Action
	)

	var flags []cli.Flag
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, pruneCfg.Flags()...)
	flags = append(flags, actionCfg.Flags()...)

	return &cli.Command{
		Name:    "prune",
		Aliases: []string{"p"},
		Usage:   "Delete outdated prereleases of a repository and report the ordered prerelease list",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString()))
			ctx = ctxlog.With(ctx, logger)

			target, err := actionCfg.Target()
			if err != nil {
				return err
			}

			opts, err := pruneCfg.Options()
			if err != nil {
				return err
			}

			logger.Debug("Configured prune",
				slog.Any("github", githubCfg),
				slog.Any("prune", pruneCfg),
				slog.String("repository", target.String()),
			)

			client, err := deps.newClient(&githubCfg)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			reporter := actions.NewReporter(actionCfg.OutputPath, deps.stdout)
			result, err := usecase.NewPrune(client, reporter).Prune(ctx, target, opts)
			if err != nil {
				return err
			}

			printSummary(deps.stderr, result)

			if len(result.Failures) > 0 {
				logger.Warn("Some deletions failed",
					slog.Int("failures", len(result.Failures)),
				)
			}
			return nil
		},
	}
}

// printSummary writes a human readable overview of a prune run
func printSummary(w io.Writer, result *model.PruneResult) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	sel := result.Selection

	bold.Fprintf(w, "Prereleases of %s\n", result.Target)
	if sel.Retained == nil {
		faint.Fprintln(w, "  (none)")
	} else {
		green.Fprintf(w, "  keep    %s\n", sel.Retained.TagName)
	}

	deleted := make(map[*model.Release]bool, len(result.Deleted))
	for _, r := range result.Deleted {
		deleted[r] = true
	}
	failed := make(map[*model.Release][]model.DeletionFailure)
	for _, f := range result.Failures {
		failed[f.Release] = append(failed[f.Release], f)
	}

	for _, r := range sel.Deletable {
		switch {
		case deleted[r]:
			red.Fprintf(w, "  deleted %s\n", r.TagName)
		case len(failed[r]) > 0:
			for _, f := range failed[r] {
				yellow.Fprintf(w, "  failed  %s (%s): %v\n", r.TagName, f.Kind, f.Err)
			}
		case result.DryRun:
			yellow.Fprintf(w, "  would delete %s\n", r.TagName)
		default:
			faint.Fprintf(w, "  outdated %s\n", r.TagName)
		}
	}

	for _, r := range sel.Skipped {
		faint.Fprintf(w, "  skipped %s (not semver)\n", r.TagName)
	}
}
