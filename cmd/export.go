package cmd

import (
	"fmt"

	"Kubernetes-config-generator/export"
	"Kubernetes-config-generator/gitops"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	file   string
	out    string
	strict bool
	style  string

	gitRepo     string
	gitInit     bool
	gitDir      string
	gitMessage  string
	gitPush     bool
	authorName  string
	authorEmail string
}

func newExportCmd(a *app) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a workspace file to multi-document YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "workspace file (YAML or JSON)")
	flags.StringVarP(&f.out, "output", "o", ".", `output directory, "-" for stdout`)
	flags.BoolVar(&f.strict, "strict", false, "separate deployment blocks with ---")
	flags.StringVar(&f.style, "style", "", "classic or kubectl")
	flags.StringVar(&f.gitRepo, "git-repo", "", "commit the export into this local repository")
	flags.BoolVar(&f.gitInit, "git-init", false, "initialize --git-repo when it does not exist")
	flags.StringVar(&f.gitDir, "git-dir", "", "directory inside the repository")
	flags.StringVar(&f.gitMessage, "message", "", "commit message")
	flags.BoolVar(&f.gitPush, "push", false, "push the commit to origin")
	flags.StringVar(&f.authorName, "author-name", "kcg", "commit author name")
	flags.StringVar(&f.authorEmail, "author-email", "kcg@localhost", "commit author email")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) export(cmd *cobra.Command, f *exportFlags) error {
	ws, err := loadWorkspace(a.fs, f.file)
	if err != nil {
		return err
	}

	styleName := a.cfg.ExportStyle
	if f.style != "" {
		styleName = f.style
	}
	style, err := export.ParseStyle(styleName)
	if err != nil {
		return err
	}
	res := export.Generate(ws, export.Options{
		StrictSeparators: f.strict || a.cfg.ExportStrict,
		Style:            style,
	})

	out := cmd.OutOrStdout()
	switch {
	case f.gitRepo != "":
		hash, err := gitops.Publish(cmd.Context(), res, gitops.Options{
			RepoPath:    f.gitRepo,
			Init:        f.gitInit,
			Dir:         f.gitDir,
			AuthorName:  f.authorName,
			AuthorEmail: f.authorEmail,
			Message:     f.gitMessage,
			Push:        f.gitPush,
			Token:       a.cfg.GitHubToken,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "committed %s as %s\n", res.Filename, hash)
	case f.out == "-":
		fmt.Fprint(out, res.YAML)
	default:
		path, err := export.WriteFile(a.fs, f.out, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s (%d resources)\n", path, res.Summary.Resources)
	}
	return nil
}
