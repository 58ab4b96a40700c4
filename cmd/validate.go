package cmd

import (
	"errors"
	"fmt"

	"Kubernetes-config-generator/workspace"

	"github.com/spf13/cobra"
)

var errFindings = errors.New("workspace has findings")

func newValidateCmd(a *app) *cobra.Command {
	var (
		file   string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report advisory warnings and missing references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(a.fs, file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			warnings := workspace.Validate(ws)
			dangling := workspace.DanglingReferences(ws)
			for _, w := range warnings {
				fmt.Fprintln(out, "warning:", w)
			}
			for _, r := range dangling {
				fmt.Fprintln(out, "missing:", r)
			}
			if len(warnings)+len(dangling) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			if strict {
				return errFindings
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "workspace file (YAML or JSON)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when anything is reported")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
