package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"k8s.io/client-go/kubernetes/scheme"
)

const webWorkspace = `
namespaces:
  - name: default
deployments:
  - id: web-id
    appName: web
    image: nginx:latest
    port: 8080
    targetPort: 8080
    servicePort: 80
    replicas: 2
    serviceType: ClusterIP
    envVars:
      - name: TOKEN
        valueFrom:
          kind: secret
          name: api-keys
          key: token
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ws.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(webWorkspace), 0o600))
	return path
}

func TestLoadWorkspaceAcceptsJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NilError(t, afero.WriteFile(fs, "/ws.json", []byte(`{"deployments":[{"appName":"api","image":"api:1"}]}`), 0o644))

	ws, err := loadWorkspace(fs, "/ws.json")
	assert.NilError(t, err)
	assert.Equal(t, len(ws.Deployments), 1)
	assert.Equal(t, ws.Deployments[0].AppName, "api")
	assert.Check(t, ws.HasNamespace("default"))

	_, err = loadWorkspace(fs, "/absent.yaml")
	assert.ErrorContains(t, err, "read workspace")
}

func TestExportToStdout(t *testing.T) {
	out, err := run(t, "export", "-f", writeWorkspace(t), "-o", "-")
	assert.NilError(t, err)
	assert.Check(t, strings.HasPrefix(out, "# Kubernetes configuration generated"))
	assert.Check(t, is.Contains(out, "replicas: 2"))

	for _, doc := range strings.Split(out, "\n---\n") {
		if strings.TrimSpace(stripComments(doc)) == "" {
			continue
		}
		_, _, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(doc), nil, nil)
		assert.NilError(t, err, doc)
	}
}

func stripComments(doc string) string {
	var b strings.Builder
	for _, line := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(line, "#") {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "-f", writeWorkspace(t), "-o", dir, "--strict")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "web-deployment.yaml"))

	raw, err := os.ReadFile(filepath.Join(dir, "web-deployment.yaml"))
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(raw), "kind: Service"))
}

func TestExportToGitRepository(t *testing.T) {
	repo := t.TempDir()
	out, err := run(t, "export", "-f", writeWorkspace(t), "--git-repo", repo, "--git-init", "--git-dir", "manifests")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "committed web-deployment.yaml as "))

	_, err = os.Stat(filepath.Join(repo, "manifests", "web-deployment.yaml"))
	assert.NilError(t, err)
}

func TestExportRejectsUnknownStyle(t *testing.T) {
	_, err := run(t, "export", "-f", writeWorkspace(t), "-o", "-", "--style", "helm")
	assert.ErrorContains(t, err, "unknown export style")
}

func TestValidate(t *testing.T) {
	path := writeWorkspace(t)

	out, err := run(t, "validate", "-f", path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "missing: web (env TOKEN) references missing secret default/api-keys"))

	_, err = run(t, "validate", "-f", path, "--strict")
	assert.ErrorIs(t, err, errFindings)
}
