package gitops

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"Kubernetes-config-generator/export"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var logs = logrus.StandardLogger()

var ErrNothingToCommit = errors.New("export is unchanged, nothing to commit")

type Options struct {
	// RepoPath is the working tree of a local repository.
	RepoPath string
	// Init creates the repository when RepoPath is not one yet.
	Init bool
	// Dir is the directory inside the repository that receives the file.
	Dir         string
	AuthorName  string
	AuthorEmail string
	Message     string

	// Push sends the commit to Remote, authenticating with Token when set.
	Push   bool
	Remote string
	Token  string
}

// Publish writes the export into the repository and commits it. It returns
// the new commit hash.
func Publish(ctx context.Context, res export.Result, opts Options) (string, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) && opts.Init {
		logs.WithField("path", opts.RepoPath).Info("initializing manifest repository")
		repo, err = git.PlainInit(opts.RepoPath, false)
	}
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", opts.RepoPath, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), opts.RepoPath)
	if _, err := export.WriteFile(fs, filepath.Join("/", opts.Dir), res); err != nil {
		return "", err
	}
	rel := filepath.ToSlash(filepath.Join(opts.Dir, filepath.Base(res.Filename)))
	if _, err := wt.Add(rel); err != nil {
		return "", fmt.Errorf("stage %s: %w", rel, err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	if st, ok := status[rel]; !ok || st.Staging == git.Unmodified {
		return "", ErrNothingToCommit
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Update %s", rel)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  opts.AuthorName,
			Email: opts.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit %s: %w", rel, err)
	}
	logs.WithField("commit", hash.String()).WithField("file", rel).Info("export committed")

	if opts.Push {
		remote := opts.Remote
		if remote == "" {
			remote = git.DefaultRemoteName
		}
		pushOptions := &git.PushOptions{RemoteName: remote}
		if opts.Token != "" {
			pushOptions.Auth = &http.BasicAuth{
				Username: "kcg", // token auth ignores the username
				Password: opts.Token,
			}
		}
		if err := repo.PushContext(ctx, pushOptions); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return hash.String(), fmt.Errorf("push to %s: %w", remote, err)
		}
	}
	return hash.String(), nil
}
