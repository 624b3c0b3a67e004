package types_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relprune/pkg/domain/types"
)

func TestParseInvalidTagPolicy(t *testing.T) {
	for input, want := range map[string]types.InvalidTagPolicy{
		"":     types.InvalidTagSkip,
		"skip": types.InvalidTagSkip,
		"fail": types.InvalidTagFail,
	} {
		got, err := types.ParseInvalidTagPolicy(input)
		gt.NoError(t, err)
		gt.Value(t, got).Equal(want)
	}

	_, err := types.ParseInvalidTagPolicy("abort")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
}

func TestParseReportScope(t *testing.T) {
	for input, want := range map[string]types.ReportScope{
		"":         types.ReportScopeAll,
		"all":      types.ReportScopeAll,
		"outdated": types.ReportScopeOutdated,
	} {
		got, err := types.ParseReportScope(input)
		gt.NoError(t, err)
		gt.Value(t, got).Equal(want)
	}

	_, err := types.ParseReportScope("ALL")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
}
