package gitops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"Kubernetes-config-generator/export"

	"github.com/go-git/go-git/v5"
)

func TestPublishCommitsExport(t *testing.T) {
	dir := t.TempDir()
	res := export.Result{Filename: "web-deployment.yaml", YAML: "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: web\n"}
	opts := Options{
		RepoPath:    dir,
		Init:        true,
		Dir:         "manifests",
		AuthorName:  "Config Bot",
		AuthorEmail: "bot@example.com",
	}

	hash, err := Publish(context.Background(), res, opts)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifests", "web-deployment.yaml"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != res.YAML {
		t.Fatalf("unexpected file content %q", data)
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	if head.Hash().String() != hash {
		t.Fatalf("HEAD %s does not match returned hash %s", head.Hash(), hash)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if commit.Author.Email != "bot@example.com" || commit.Message != "Update manifests/web-deployment.yaml" {
		t.Fatalf("unexpected commit %+v", commit)
	}

	if _, err := Publish(context.Background(), res, opts); !errors.Is(err, ErrNothingToCommit) {
		t.Fatalf("expected ErrNothingToCommit, got %v", err)
	}

	res.YAML += "  labels:\n    env: prod\n"
	if _, err := Publish(context.Background(), res, opts); err != nil {
		t.Fatalf("second publish: %v", err)
	}
}

func TestPublishWithoutRepository(t *testing.T) {
	_, err := Publish(context.Background(), export.Result{Filename: "a.yaml"}, Options{RepoPath: t.TempDir()})
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		t.Fatalf("expected ErrRepositoryNotExists, got %v", err)
	}
}
