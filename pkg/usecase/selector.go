package usecase

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/domain/types"
)

// SelectPrereleases picks the prereleases out of releases and orders them by
// descending semver precedence. The first one is retained, the rest are deletable.
// Stable releases never appear in the result. releases is not modified.
func SelectPrereleases(releases []*model.Release, policy types.InvalidTagPolicy) (*model.Selection, error) {
	type item struct {
		release *model.Release
		version *semver.Version
	}

	sel := &model.Selection{}
	items := make([]item, 0, len(releases))

	for _, r := range releases {
		if r == nil || !r.Prerelease {
			continue
		}

		v, err := parseVersion(r.TagName)
		if err != nil {
			if policy == types.InvalidTagFail {
				return nil, goerr.Wrap(err, "prerelease tag is not a valid semantic version",
					goerr.V("tag", r.TagName),
					goerr.V("release_id", r.ID),
					goerr.T(types.ErrTagInvalidVersion),
				)
			}
			sel.Skipped = append(sel.Skipped, r)
			continue
		}

		items = append(items, item{release: r, version: v})
	}

	// Equal precedence keeps feed order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].version.Compare(items[j].version) > 0
	})

	sel.Ordered = make([]*model.Release, len(items))
	for i, it := range items {
		sel.Ordered[i] = it.release
	}

	if len(sel.Ordered) > 0 {
		sel.Retained = sel.Ordered[0]
		sel.Deletable = sel.Ordered[1:]
	}

	return sel, nil
}

// parseVersion accepts strict semver with at most one leading "v".
// Partial versions such as "v2-beta" or "1.3-rc" are rejected.
func parseVersion(tag string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
}
