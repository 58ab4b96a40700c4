package cmd

import (
	"fmt"
	"os"

	"Kubernetes-config-generator/config"
	"Kubernetes-config-generator/model"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var logs = logrus.StandardLogger()

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	fs      afero.Fs
}

func NewRootCmd() *cobra.Command {
	a := &app{fs: afero.NewOsFs()}
	root := &cobra.Command{
		Use:           "kcg",
		Short:         "Build Kubernetes manifests from a deployment workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if err := config.SetupLogger(cfg); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")

	root.AddCommand(newServeCmd(a), newExportCmd(a), newValidateCmd(a))
	return root
}

// Execute executes the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadWorkspace reads a workspace file. JSON documents are valid YAML, so
// both formats go through the YAML decoder.
func loadWorkspace(fs afero.Fs, path string) (model.Workspace, error) {
	var ws model.Workspace
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return ws, fmt.Errorf("read workspace: %w", err)
	}
	if err := yaml.Unmarshal(raw, &ws); err != nil {
		return ws, fmt.Errorf("parse workspace %s: %w", path, err)
	}
	if len(ws.Namespaces) == 0 {
		ws.Namespaces = []model.Namespace{model.DefaultNamespace()}
	}
	return ws, nil
}
