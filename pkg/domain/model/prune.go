package model

import (
	"github.com/m-mizutani/relprune/pkg/domain/types"
)

// Selection is the result of ordering prereleases by version precedence
type Selection struct {
	Ordered   []*Release // Prereleases, highest precedence first
	Retained  *Release   // Ordered[0], nil when there is no prerelease
	Deletable []*Release // Ordered[1:]
	Skipped   []*Release // Prereleases whose tag is not a valid semver
}

// PruneOptions controls what a prune run is allowed to do
type PruneOptions struct {
	DeleteTags  bool
	DryRun      bool
	InvalidTag  types.InvalidTagPolicy
	ReportScope types.ReportScope
	Concurrency int
}

// Mutates reports whether the options permit remote deletions
func (o PruneOptions) Mutates() bool {
	return o.DeleteTags && !o.DryRun
}

// DeletionKind tells which remote object a deletion targeted
type DeletionKind string

const (
	DeletionKindRelease DeletionKind = "release"
	DeletionKindTag     DeletionKind = "tag"
)

// DeletionFailure records one failed deletion call
type DeletionFailure struct {
	Release *Release
	Kind    DeletionKind
	Err     error
}

// PruneResult is the outcome of one prune run
type PruneResult struct {
	Target    Target
	Selection *Selection
	Report    []ReportEntry
	Deleted   []*Release // Releases whose release object and tag were both removed
	Failures  []DeletionFailure
	DryRun    bool
}
