package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/domain/types"
	"github.com/m-mizutani/relprune/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Prune holds the options of a prune run
type Prune struct {
	DeleteTags  bool
	DryRun      bool
	InvalidTag  string
	ReportScope string
	Concurrency int
}

// Flags returns CLI flags for prune options
func (c *Prune) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "delete-tags",
			Usage:       "Delete outdated prereleases together with their tags",
			Destination: &c.DeleteTags,
			Sources:     cli.EnvVars("INPUT_DELETE-TAGS"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report what would be deleted without deleting anything",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("INPUT_DRY-RUN"),
		},
		&cli.StringFlag{
			Name:        "invalid-tag",
			Usage:       "What to do with prereleases whose tag is not semver (skip, fail)",
			Value:       string(types.InvalidTagSkip),
			Destination: &c.InvalidTag,
			Sources:     cli.EnvVars("INPUT_INVALID-TAG"),
		},
		&cli.StringFlag{
			Name:        "report-scope",
			Usage:       "Prereleases written to the output (all, outdated)",
			Value:       string(types.ReportScopeAll),
			Destination: &c.ReportScope,
			Sources:     cli.EnvVars("INPUT_REPORT-SCOPE"),
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of releases deleted in parallel",
			Value:       usecase.DefaultConcurrency,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("RELPRUNE_CONCURRENCY"),
		},
	}
}

// Options validates the configuration and converts it into model.PruneOptions
func (c *Prune) Options() (model.PruneOptions, error) {
	invalidTag, err := types.ParseInvalidTagPolicy(c.InvalidTag)
	if err != nil {
		return model.PruneOptions{}, err
	}

	scope, err := types.ParseReportScope(c.ReportScope)
	if err != nil {
		return model.PruneOptions{}, err
	}

	if c.Concurrency < 0 {
		return model.PruneOptions{}, goerr.New("concurrency must not be negative",
			goerr.V("concurrency", c.Concurrency),
			goerr.T(types.ErrTagConfig),
		)
	}

	return model.PruneOptions{
		DeleteTags:  c.DeleteTags,
		DryRun:      c.DryRun,
		InvalidTag:  invalidTag,
		ReportScope: scope,
		Concurrency: c.Concurrency,
	}, nil
}

// Action holds settings only used when running as a one-shot step
type Action struct {
	Repository string
	OutputPath string
}

// Flags returns CLI flags for the step environment
func (c *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository in owner/repo form",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-output",
			Usage:       "File receiving step outputs (stdout when empty)",
			Destination: &c.OutputPath,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
	}
}

// Target parses the repository flag
func (c *Action) Target() (model.Target, error) {
	return model.ParseTarget(c.Repository)
}
