// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/git"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/util"
	"github.com/hacs/hacs/version"
)

const perPage = 100

var _ client.Client = &Client{}

type ClientConfig struct {
	// Token authenticates API calls, anonymous when empty.
	Token string
	// BaseURL overrides the API endpoint.
	BaseURL string
	// Site is the web root the git remote is resolved against.
	Site version.Site
	// Remote resolves branch heads through git when set, the API is used
	// otherwise.
	Remote git.Repository
	Logger *zap.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	var tc *http.Client
	if config.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: config.Token},
		)
		tc = oauth2.NewClient(context.Background(), ts)
	}

	gh := gogithub.NewClient(tc)
	if config.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(config.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		gh.BaseURL = baseURL
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: gh,
		remote: config.Remote,
		site:   config.Site,
		logger: logger,
	}, nil
}

// Client reads repositories from the GitHub REST API.
type Client struct {
	client *gogithub.Client
	remote git.Repository
	site   version.Site
	logger *zap.Logger
}

// wrap maps 404 responses to client.ErrNotFound.
func wrap(err error, format string, args ...any) error {
	var response *gogithub.ErrorResponse
	if errors.As(err, &response) && response.Response != nil && response.Response.StatusCode == http.StatusNotFound {
		err = client.ErrNotFound
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func (c *Client) FetchMetadata(ctx context.Context, fullName string) (types.Metadata, error) {
	owner, name, err := util.ParseFullName(fullName)
	if err != nil {
		return types.Metadata{}, err
	}

	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return types.Metadata{}, wrap(err, "failed to get repository %s", fullName)
	}

	return types.Metadata{
		ID:            repo.GetID(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Topics:        repo.Topics,
		DefaultBranch: repo.GetDefaultBranch(),
		PushedAt:      repo.GetPushedAt().Time,
		Archived:      repo.GetArchived(),
		Fork:          repo.GetFork(),
		Stars:         repo.GetStargazersCount(),
	}, nil
}

func (c *Client) FetchTree(ctx context.Context, fullName string, ref string) ([]types.TreeFile, error) {
	owner, name, err := util.ParseFullName(fullName)
	if err != nil {
		return nil, err
	}

	tree, _, err := c.client.Git.GetTree(ctx, owner, name, ref, true)
	if err != nil {
		return nil, wrap(err, "failed to get tree of %s at %s", fullName, ref)
	}
	if tree.GetTruncated() {
		c.logger.Warn("tree truncated", zap.String("repository", fullName), zap.String("ref", ref))
	}

	files := make([]types.TreeFile, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		files = append(files, types.TreeFile{
			Filename: entry.GetPath(),
			Type:     entry.GetType(),
		})
	}
	return files, nil
}

func (c *Client) FetchReleases(ctx context.Context, fullName string) ([]types.Release, error) {
	owner, name, err := util.ParseFullName(fullName)
	if err != nil {
		return nil, err
	}

	var releases []types.Release
	opts := &gogithub.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.client.Repositories.ListReleases(ctx, owner, name, opts)
		if err != nil {
			return nil, wrap(err, "failed to list releases of %s", fullName)
		}

		for _, release := range page {
			if release.GetDraft() {
				continue
			}
			assets := make([]types.Asset, 0, len(release.Assets))
			for _, asset := range release.Assets {
				assets = append(assets, types.Asset{
					Name:          asset.GetName(),
					DownloadURL:   asset.GetBrowserDownloadURL(),
					DownloadCount: asset.GetDownloadCount(),
				})
			}
			releases = append(releases, types.Release{
				Tag:        release.GetTagName(),
				Prerelease: release.GetPrerelease(),
				Assets:     assets,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return releases, nil
}

func (c *Client) FetchFile(ctx context.Context, fullName string, ref string, path string) ([]byte, error) {
	owner, name, err := util.ParseFullName(fullName)
	if err != nil {
		return nil, err
	}

	file, _, _, err := c.client.Repositories.GetContents(ctx, owner, name, path, &gogithub.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, wrap(err, "failed to get %s of %s at %s", path, fullName, ref)
	}
	if file == nil {
		return nil, fmt.Errorf("%s of %s is a directory: %w", path, fullName, client.ErrNotFound)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

func (c *Client) LastCommit(ctx context.Context, fullName string, branch string) (string, error) {
	if c.remote != nil {
		hash, err := c.remote.Head(ctx, c.site.CloneURL(fullName), branch)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s of %s: %w", branch, fullName, err)
		}
		return hash.String(), nil
	}

	owner, name, err := util.ParseFullName(fullName)
	if err != nil {
		return "", err
	}
	b, _, err := c.client.Repositories.GetBranch(ctx, owner, name, branch, 1)
	if err != nil {
		return "", wrap(err, "failed to get branch %s of %s", branch, fullName)
	}
	return b.GetCommit().GetSHA(), nil
}

func (c *Client) RateLimit(ctx context.Context) (types.RateLimit, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return types.RateLimit{}, wrap(err, "failed to get rate limit")
	}
	core := limits.GetCore()
	if core == nil {
		return types.RateLimit{}, fmt.Errorf("rate limit without core resource: %w", client.ErrNotFound)
	}
	return types.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}
