package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Version is overwritten at build time via -ldflags
var Version = "dev"

// Error tags used to classify failures across layers
var (
	// ErrTagFetch marks a failure to list releases. It is fatal for a run.
	ErrTagFetch = goerr.NewTag("fetch_error")
	// ErrTagInvalidVersion marks a release tag that is not a valid semantic version.
	ErrTagInvalidVersion = goerr.NewTag("invalid_version_tag")
	// ErrTagDeletion marks a failed release or tag reference deletion.
	ErrTagDeletion = goerr.NewTag("deletion_failure")
	// ErrTagConfig marks invalid user supplied configuration.
	ErrTagConfig = goerr.NewTag("config_error")
)

// InvalidTagPolicy decides what happens to prereleases whose tag is not semver
type InvalidTagPolicy string

const (
	InvalidTagSkip InvalidTagPolicy = "skip"
	InvalidTagFail InvalidTagPolicy = "fail"
)

// ParseInvalidTagPolicy converts user input into an InvalidTagPolicy
func ParseInvalidTagPolicy(s string) (InvalidTagPolicy, error) {
	switch p := InvalidTagPolicy(s); p {
	case InvalidTagSkip, InvalidTagFail:
		return p, nil
	case "":
		return InvalidTagSkip, nil
	default:
		return "", goerr.New("unknown invalid tag policy",
			goerr.V("policy", s),
			goerr.T(ErrTagConfig),
		)
	}
}

// ReportScope decides which prereleases are written to the prereleases output
type ReportScope string

const (
	// ReportScopeAll reports every ordered prerelease, retained one first.
	ReportScopeAll ReportScope = "all"
	// ReportScopeOutdated reports only prereleases beyond the retained one.
	ReportScopeOutdated ReportScope = "outdated"
)

// ParseReportScope converts user input into a ReportScope
func ParseReportScope(s string) (ReportScope, error) {
	switch r := ReportScope(s); r {
	case ReportScopeAll, ReportScopeOutdated:
		return r, nil
	case "":
		return ReportScopeAll, nil
	default:
		return "", goerr.New("unknown report scope",
			goerr.V("scope", s),
			goerr.T(ErrTagConfig),
		)
	}
}
