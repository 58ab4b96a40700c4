package export

import (
	"encoding/json"
	"strings"
	"testing"

	"Kubernetes-config-generator/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"k8s.io/client-go/kubernetes/scheme"
)

func deployment(name string) model.DeploymentConfig {
	d := model.NewDeploymentConfig()
	d.ID = name + "-id"
	d.AppName = name
	d.Image = name + ":1.0"
	return d
}

func workspaceWith(deployments ...model.DeploymentConfig) model.Workspace {
	ws := model.NewWorkspace()
	ws.Deployments = deployments
	return ws
}

func TestPristineWorkspaceGetsWelcomeDocument(t *testing.T) {
	for _, ws := range []model.Workspace{model.NewWorkspace(), {}} {
		res := Generate(ws, Options{})
		assert.Equal(t, res.YAML, WelcomeDocument)
		assert.Equal(t, res.Filename, "kubernetes-config.yaml")
	}
}

func TestWelcomeDocumentIsAValidConfigMap(t *testing.T) {
	_, gvk, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(WelcomeDocument), nil, nil)
	assert.NilError(t, err)
	assert.Equal(t, gvk.Kind, "ConfigMap")
}

func TestTwoDeploymentsAreSeparatedByABlankLine(t *testing.T) {
	res := Generate(workspaceWith(deployment("web"), deployment("api")), Options{})

	assert.Check(t, is.Contains(res.YAML, "# === WEB DEPLOYMENT ===\n# Containers: 1\n"))
	assert.Check(t, is.Contains(res.YAML, "# === API DEPLOYMENT ===\n# Containers: 1\n"))
	assert.Equal(t, strings.Count(res.YAML, "DEPLOYMENT ==="), 2)

	webStart := strings.Index(res.YAML, "# === WEB DEPLOYMENT ===")
	apiStart := strings.Index(res.YAML, "# === API DEPLOYMENT ===")
	assert.Assert(t, webStart > 0 && apiStart > webStart)

	webBlock := res.YAML[webStart:apiStart]
	apiBlock := res.YAML[apiStart:]
	assert.Equal(t, strings.Count(webBlock, "\n---\n"), 1)
	assert.Equal(t, strings.Count(apiBlock, "\n---\n"), 1)
	assert.Check(t, strings.HasSuffix(webBlock, "\n\n"), "blocks should be split by a blank line")

	assert.Equal(t, res.Filename, "kubernetes-deployments-2.yaml")
	assert.Equal(t, res.Summary.Resources, 4)
	assert.Check(t, strings.HasPrefix(res.YAML, "# Kubernetes configuration generated"))
	assert.Check(t, is.Contains(res.YAML, "# Deployments: 2\n# Total containers: 2\n"))
}

func TestStrictSeparatorsUseDocumentMarkers(t *testing.T) {
	res := Generate(workspaceWith(deployment("web"), deployment("api")), Options{StrictSeparators: true})

	apiStart := strings.Index(res.YAML, "# === API DEPLOYMENT ===")
	assert.Assert(t, apiStart > 0)
	assert.Check(t, strings.HasSuffix(res.YAML[:apiStart], "\n---\n"))
	assert.Check(t, !strings.Contains(res.YAML, "\n\n"))

	for _, doc := range strings.Split(res.YAML, "---\n")[1:] {
		_, _, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(doc), nil, nil)
		assert.NilError(t, err, doc)
	}
}

func TestSingleDeploymentHasNoBanner(t *testing.T) {
	res := Generate(workspaceWith(deployment("web")), Options{})
	assert.Check(t, !strings.Contains(res.YAML, "DEPLOYMENT ==="))
	assert.Equal(t, res.Filename, "web-deployment.yaml")
	assert.Check(t, is.Contains(res.YAML, "kind: Deployment\n"))
	assert.Check(t, is.Contains(res.YAML, "kind: Service\n"))
}

func TestOnlyUnnamedDeployments(t *testing.T) {
	res := Generate(workspaceWith(deployment("")), Options{})
	assert.Check(t, is.Contains(res.YAML, NoValidDeployments))
	assert.Check(t, !strings.Contains(res.YAML, "kind:"))
	assert.Equal(t, res.Summary.ValidDeployments, 0)
	assert.Equal(t, res.Filename, "kubernetes-config.yaml")
}

func TestCustomNamespacesSection(t *testing.T) {
	ws := workspaceWith(deployment(""))
	ws.Namespaces = append(ws.Namespaces,
		model.Namespace{Name: "kube-system"},
		model.Namespace{Name: "staging"},
		model.Namespace{Name: "prod", Labels: map[string]string{"env": "prod"}},
	)
	res := Generate(ws, Options{})

	assert.Check(t, is.Contains(res.YAML, "# === NAMESPACES ===\napiVersion: v1\nkind: Namespace\nmetadata:\n  name: staging\n"))
	assert.Check(t, is.Contains(res.YAML, "---\napiVersion: v1\nkind: Namespace\nmetadata:\n  name: prod\n  labels:\n    env: prod\n"))
	assert.Check(t, !strings.Contains(res.YAML, "kube-system"))
	// a custom namespace suppresses the "nothing to export" placeholder
	assert.Check(t, !strings.Contains(res.YAML, NoValidDeployments))
	assert.Check(t, is.Contains(res.YAML, "# Custom namespaces: 2\n"))
}

func TestReferencedConfigTravelsWithTheDeployment(t *testing.T) {
	d := deployment("web")
	d.EnvVars = []model.EnvVar{
		{Name: "TOKEN", ValueFrom: &model.EnvVarSource{Kind: model.EnvSourceSecret, Name: "web-token", Key: "token"}},
	}
	ws := workspaceWith(d)
	ws.Secrets = []model.Secret{{Name: "web-token", Namespace: "default", Data: map[string]string{"token": "abc"}}}
	ws.ConfigMaps = []model.ConfigMap{{Name: "loose", Namespace: "default", Data: map[string]string{"k": "v"}}}

	res := Generate(ws, Options{})
	section := strings.Index(res.YAML, "# === CONFIGMAPS AND SECRETS ===")
	assert.Assert(t, section > 0)

	deploymentStart := strings.Index(res.YAML, "kind: Deployment")
	standalone := res.YAML[section:deploymentStart]
	assert.Check(t, is.Contains(standalone, "name: loose"))
	assert.Check(t, !strings.Contains(standalone, "web-token"))
	assert.Check(t, is.Contains(res.YAML[deploymentStart:], "kind: Secret\n"))
	assert.Check(t, is.Contains(res.YAML, "token: YWJj\n"))
	assert.Equal(t, res.Summary.Resources, 4)
}

func TestSharedConfigIsEmittedOnce(t *testing.T) {
	web, api := deployment("web"), deployment("api")
	for _, d := range []*model.DeploymentConfig{&web, &api} {
		d.EnvVars = []model.EnvVar{
			{Name: "TOKEN", ValueFrom: &model.EnvVarSource{Kind: model.EnvSourceSecret, Name: "shared-token", Key: "token"}},
			{Name: "LEVEL", ValueFrom: &model.EnvVarSource{Kind: model.EnvSourceConfigMap, Name: "shared-config", Key: "level"}},
		}
	}
	ws := workspaceWith(web, api)
	ws.Secrets = []model.Secret{{Name: "shared-token", Data: map[string]string{"token": "abc"}}}
	ws.ConfigMaps = []model.ConfigMap{{Name: "shared-config", Namespace: "default", Data: map[string]string{"level": "debug"}}}

	for _, strict := range []bool{false, true} {
		res := Generate(ws, Options{StrictSeparators: strict})
		assert.Equal(t, strings.Count(res.YAML, "kind: Secret\n"), 1)
		assert.Equal(t, strings.Count(res.YAML, "kind: ConfigMap\n"), 1)
		assert.Equal(t, res.Summary.Resources, 6)

		apiStart := strings.Index(res.YAML, "# === API DEPLOYMENT ===")
		assert.Assert(t, apiStart > 0)
		assert.Check(t, strings.Index(res.YAML, "kind: Secret\n") < apiStart, "shared secret belongs to the first deployment")
		assert.Check(t, strings.Index(res.YAML, "kind: ConfigMap\n") < apiStart, "shared configmap belongs to the first deployment")
	}
}

func TestServiceScenarioFromJSON(t *testing.T) {
	raw := `{
		"namespaces": [{"name": "default"}],
		"deployments": [{
			"appName": "web", "containers": [], "image": "nginx:latest", "replicas": 2,
			"port": 80, "targetPort": 8080, "serviceType": "ClusterIP", "namespace": "default"
		}]
	}`
	var ws model.Workspace
	assert.NilError(t, json.Unmarshal([]byte(raw), &ws))

	res := Generate(ws, Options{})
	assert.Check(t, is.Contains(res.YAML, "name: web\n          image: nginx:latest\n"))
	assert.Check(t, is.Contains(res.YAML, "- containerPort: 8080\n"))
	assert.Check(t, is.Contains(res.YAML, "ports:\n    - port: 80\n      targetPort: 8080\n      protocol: TCP\n      name: http\n"))
}

func TestDanglingReferencesAreReportedAndLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := deployment("web")
	d.Volumes = []model.VolumeConfig{{Name: "conf", MountPath: "/etc/web", Type: model.VolumeTypeConfigMap, ConfigMapName: "gone"}}

	res := Generate(workspaceWith(d), Options{Logger: logger})
	assert.Assert(t, is.Len(res.Dangling, 1))
	assert.Equal(t, res.Dangling[0].Name, "gone")
	assert.Check(t, is.Contains(res.YAML, "configMap:\n            name: gone\n"))
	assert.Assert(t, hook.LastEntry() != nil)
	assert.Equal(t, hook.LastEntry().Data["name"], "gone")
}

func TestGenerateIsIdempotent(t *testing.T) {
	d := deployment("web")
	d.Labels = map[string]string{"b": "2", "a": "1", "c": "3"}
	d.Annotations = map[string]string{"z": "1", "y": "2"}
	ws := workspaceWith(d, deployment("api"))
	ws.Secrets = []model.Secret{{Name: "s", Namespace: "default", Data: map[string]string{"x": "1", "y": "2", "z": "3"}}}

	first := Generate(ws, Options{}).YAML
	for i := 0; i < 5; i++ {
		assert.Equal(t, Generate(ws, Options{}).YAML, first)
	}
}

func TestKubectlStyle(t *testing.T) {
	res := Generate(workspaceWith(deployment("web")), Options{Style: StyleKubectl})
	docs := strings.Split(res.YAML, "---\n")
	assert.Assert(t, is.Len(docs, 3))
	for _, doc := range docs[1:] {
		_, _, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(doc), nil, nil)
		assert.NilError(t, err, doc)
	}
	assert.Check(t, is.Contains(res.YAML, "creationTimestamp: null"))
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("")
	assert.NilError(t, err)
	assert.Equal(t, s, StyleClassic)
	s, err = ParseStyle("Kubectl")
	assert.NilError(t, err)
	assert.Equal(t, s, StyleKubectl)
	_, err = ParseStyle("helm")
	assert.ErrorContains(t, err, "unknown export style")
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	res := Generate(workspaceWith(deployment("web")), Options{})

	path, err := WriteFile(fs, "/out", res)
	assert.NilError(t, err)
	assert.Equal(t, path, "/out/web-deployment.yaml")

	data, err := afero.ReadFile(fs, path)
	assert.NilError(t, err)
	assert.Equal(t, string(data), res.YAML)

	exists, err := afero.Exists(fs, path+".tmp")
	assert.NilError(t, err)
	assert.Check(t, !exists)
}
