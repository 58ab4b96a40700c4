package export

import (
	"fmt"
	"path/filepath"

	"Kubernetes-config-generator/model"

	"github.com/spf13/afero"
)

// Filename picks the download name for the workspace export.
func Filename(ws model.Workspace) string {
	valid := ws.ValidDeployments()
	switch len(valid) {
	case 0:
		return "kubernetes-config.yaml"
	case 1:
		return valid[0].AppName + "-deployment.yaml"
	default:
		return fmt.Sprintf("kubernetes-deployments-%d.yaml", len(valid))
	}
}

// WriteFile stores the export under dir. The content goes to a temporary file
// first and is renamed into place, so readers never see a partial file.
func WriteFile(fs afero.Fs, dir string, res Result) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure export dir: %w", err)
	}

	target := filepath.Join(dir, filepath.Base(res.Filename))
	tmpFile := target + ".tmp"
	if err := afero.WriteFile(fs, tmpFile, []byte(res.YAML), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", res.Filename, err)
	}
	if err := fs.Rename(tmpFile, target); err != nil {
		return "", fmt.Errorf("persist %s: %w", res.Filename, err)
	}
	return target, nil
}
