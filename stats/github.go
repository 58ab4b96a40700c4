package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v55/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var logs = logrus.StandardLogger()

const starsCacheKey = "github-stars"

// GitHubStars reads the stargazer count of one repository.
type GitHubStars struct {
	client *github.Client
	owner  string
	repo   string
	cache  Cache
}

// NewGitHubStars builds the fetcher. An empty token uses the anonymous API.
func NewGitHubStars(owner, repo, token string, cache Cache) *GitHubStars {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}
	return &GitHubStars{client: client, owner: owner, repo: repo, cache: cache}
}

// SetBaseURL points the client at a GitHub Enterprise or test server.
func (g *GitHubStars) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse github url: %w", err)
	}
	g.client.BaseURL = u
	return nil
}

// Count returns the cached star count or fetches it. Any failure yields 0.
func (g *GitHubStars) Count(ctx context.Context) int {
	if g.cache != nil {
		if raw, ok := g.cache.Get(starsCacheKey); ok {
			var stars int
			if err := json.Unmarshal(raw, &stars); err == nil {
				return stars
			}
		}
	}
	if g.owner == "" || g.repo == "" {
		return 0
	}

	repo, resp, err := g.client.Repositories.Get(ctx, g.owner, g.repo)
	if err != nil {
		entry := logs.WithError(err).WithField("repo", g.owner+"/"+g.repo)
		if resp != nil {
			entry = entry.WithField("status", resp.StatusCode)
		}
		entry.Warn("fetching stargazer count failed")
		return 0
	}

	stars := repo.GetStargazersCount()
	if g.cache != nil {
		raw, _ := json.Marshal(stars)
		g.cache.Set(starsCacheKey, raw)
	}
	return stars
}
