package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/types"
)

// Release represents a published GitHub release
type Release struct {
	ID         int64  // Release ID, required only for deletion
	TagName    string // Tag the release points at, expected to be semver
	Prerelease bool   // True when the release is marked as prerelease
}

// TagRef returns the git reference of the release tag as used by the git refs API
func (r *Release) TagRef() string {
	return "tags/" + r.TagName
}

// ReportEntry is a single element of the prereleases output
type ReportEntry struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
}

// ReportEntries converts releases into report entries keeping their order
func ReportEntries(releases []*Release) []ReportEntry {
	entries := make([]ReportEntry, 0, len(releases))
	for _, r := range releases {
		entries = append(entries, ReportEntry{
			TagName:    r.TagName,
			Prerelease: r.Prerelease,
		})
	}
	return entries
}

// Target identifies a repository
type Target struct {
	Owner string
	Repo  string
}

// String returns the owner/repo form
func (t Target) String() string {
	return t.Owner + "/" + t.Repo
}

// ParseTarget parses "owner/repo"
func ParseTarget(s string) (Target, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Target{}, goerr.New("repository must be in owner/repo form",
			goerr.V("repository", s),
			goerr.T(types.ErrTagConfig),
		)
	}
	return Target{Owner: owner, Repo: repo}, nil
}
