package github

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/domain/types"
)

// releasesPerPage is the maximum page size accepted by the releases API
const releasesPerPage = 100

type client struct {
	githubClient *github.Client
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for client construction
type Option func(*options)

// WithBaseURL points the client at a GitHub Enterprise Server API endpoint
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// NewClient creates a new GitHub client authenticated by a token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is required", goerr.T(types.ErrTagConfig))
	}

	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := newClient(github.NewClient(cfg.httpClient).WithAuthToken(token), cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewAppClient creates a new GitHub client with App installation authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	base := http.DefaultTransport
	if cfg.httpClient != nil && cfg.httpClient.Transport != nil {
		base = cfg.httpClient.Transport
	}

	itr, err := ghinstallation.New(base, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
			goerr.T(types.ErrTagConfig),
		)
	}
	if cfg.baseURL != "" {
		itr.BaseURL = cfg.baseURL
	}

	c, err := newClient(github.NewClient(&http.Client{Transport: itr}), cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(gh *github.Client, cfg *options) (*client, error) {
	if cfg.baseURL != "" {
		enterprise, err := gh.WithEnterpriseURLs(cfg.baseURL, cfg.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL",
				goerr.V("url", cfg.baseURL),
				goerr.T(types.ErrTagConfig),
			)
		}
		gh = enterprise
	}

	return &client{githubClient: gh}, nil
}

// ListReleases walks every page of the releases API and returns the concatenated result
func (c *client) ListReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	logger := ctxlog.From(ctx)

	var releases []*model.Release
	opt := &github.ListOptions{PerPage: releasesPerPage}

	for {
		page, resp, err := c.githubClient.Repositories.ListReleases(ctx, owner, repo, opt)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list releases",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("page", opt.Page),
				goerr.T(types.ErrTagFetch),
			)
		}

		for _, r := range page {
			releases = append(releases, &model.Release{
				ID:         r.GetID(),
				TagName:    r.GetTagName(),
				Prerelease: r.GetPrerelease(),
			})
		}

		logger.Debug("Fetched releases page",
			"owner", owner,
			"repo", repo,
			"page", opt.Page,
			"count", len(page),
		)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return releases, nil
}

// DeleteRelease deletes a release object. The tag it points at is left untouched.
func (c *client) DeleteRelease(ctx context.Context, owner, repo string, releaseID int64) error {
	if _, err := c.githubClient.Repositories.DeleteRelease(ctx, owner, repo, releaseID); err != nil {
		return goerr.Wrap(err, "failed to delete release",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("release_id", releaseID),
			goerr.T(types.ErrTagDeletion),
		)
	}
	return nil
}

// DeleteTagRef deletes a git reference, e.g. "tags/v1.0.0-beta"
func (c *client) DeleteTagRef(ctx context.Context, owner, repo, ref string) error {
	if _, err := c.githubClient.Git.DeleteRef(ctx, owner, repo, ref); err != nil {
		return goerr.Wrap(err, "failed to delete tag reference",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
			goerr.T(types.ErrTagDeletion),
		)
	}
	return nil
}
