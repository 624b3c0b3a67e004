package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
	"github.com/m-mizutani/relprune/pkg/domain/types"
	githubinfra "github.com/m-mizutani/relprune/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token  string `masq:"secret"`
	APIURL string

	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	WebhookSecret  string `masq:"secret"`
}

// Flags returns CLI flags for token based GitHub access
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token with contents:write permission",
			Destination: &c.Token,
			Sources:     cli.EnvVars("INPUT_GITHUB-TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub Enterprise Server API URL (empty for github.com)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("RELPRUNE_GITHUB_API_URL"),
		},
	}
}

// AppFlags returns CLI flags for GitHub App access and webhook verification
func (c *GitHub) AppFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RELPRUNE_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RELPRUNE_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("RELPRUNE_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RELPRUNE_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// NewClient builds a GitHub client. A token takes precedence over App credentials.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	var opts []githubinfra.Option
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.APIURL))
	}

	switch {
	case c.Token != "":
		return githubinfra.NewClient(c.Token, opts...)
	case c.AppID != 0 && c.InstallationID != 0 && c.PrivateKey != "":
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, []byte(c.PrivateKey), opts...)
	default:
		return nil, goerr.New("either GitHub token or GitHub App credentials are required",
			goerr.T(types.ErrTagConfig),
		)
	}
}
