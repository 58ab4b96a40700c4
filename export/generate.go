package export

import (
	"fmt"
	"strings"

	"Kubernetes-config-generator/internal/yamlrender"
	"Kubernetes-config-generator/kubeutils"
	"Kubernetes-config-generator/model"
	"Kubernetes-config-generator/workspace"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

var logs = logrus.StandardLogger()

type Style string

const (
	// StyleClassic renders through the ordered renderer.
	StyleClassic Style = "classic"
	// StyleKubectl marshals the typed objects like kubectl get -o yaml.
	StyleKubectl Style = "kubectl"
)

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleClassic:
		return StyleClassic, nil
	case StyleKubectl:
		return StyleKubectl, nil
	}
	return "", fmt.Errorf("unknown export style %q", s)
}

type Options struct {
	// StrictSeparators puts "---" between deployment blocks instead of a
	// blank line, so every top level resource is its own document.
	StrictSeparators bool
	Style            Style
	Logger           logrus.FieldLogger
}

type Summary struct {
	CustomNamespaces int `json:"customNamespaces"`
	Deployments      int `json:"deployments"`
	ValidDeployments int `json:"validDeployments"`
	Containers       int `json:"containers"`
	Resources        int `json:"resources"`
}

type Result struct {
	YAML     string                `json:"yaml"`
	Filename string                `json:"filename"`
	Warnings []workspace.Warning   `json:"warnings"`
	Dangling []workspace.Reference `json:"dangling"`
	Summary  Summary               `json:"summary"`
}

// Generate turns the workspace into the export text. It never fails: missing
// data degrades into comments and warnings. The same workspace always gives
// byte identical output.
func Generate(ws model.Workspace, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = logs
	}

	res := Result{
		Filename: Filename(ws),
		Warnings: workspace.Validate(ws),
		Dangling: workspace.DanglingReferences(ws),
	}
	for _, ref := range res.Dangling {
		log.WithField("deployment", ref.Deployment).
			WithField("kind", ref.Kind).
			WithField("name", ref.Name).
			Warn("reference to a missing object is exported as written")
	}
	for _, w := range res.Warnings {
		log.WithField("deployment", w.Deployment).WithField("field", w.Field).Debug(w.Message)
	}

	if ws.IsPristine() {
		res.YAML = WelcomeDocument
		return res
	}

	a := assembler{opts: opts, log: log, catalog: kubeutils.CatalogFrom(ws)}
	custom := ws.CustomNamespaces()
	valid := ws.ValidDeployments()

	res.Summary = Summary{
		CustomNamespaces: len(custom),
		Deployments:      len(ws.Deployments),
		ValidDeployments: len(valid),
	}
	for _, d := range valid {
		res.Summary.Containers += d.ContainerCount()
	}

	sections := []string{header(res.Summary)}

	if len(custom) > 0 {
		docs := make([]string, 0, len(custom))
		for _, ns := range custom {
			docs = append(docs, a.render(kubeutils.NamespaceResource{Namespace: kubeutils.BuildNamespace(ns)}))
		}
		res.Summary.Resources += len(docs)
		sections = append(sections, "# === NAMESPACES ===\n"+yamlrender.Join(docs...))
	}

	if standalone := a.standaloneConfig(ws, valid); len(standalone) > 0 {
		res.Summary.Resources += len(standalone)
		sections = append(sections, "# === CONFIGMAPS AND SECRETS ===\n"+yamlrender.Join(standalone...))
	}

	switch {
	case len(valid) == 0 && len(ws.Deployments) > 0 && len(custom) == 0:
		sections = append(sections, NoValidDeployments)
	case len(valid) > 0:
		blocks := make([]string, 0, len(valid))
		shared := mapset.NewThreadUnsafeSet[string]()
		for _, d := range valid {
			bundle := kubeutils.BuildResources(d, a.catalog)
			docs := make([]string, 0, len(bundle.Resources))
			for _, r := range bundle.Resources {
				// A ConfigMap or Secret shared by several deployments goes
				// out once, with the first of them.
				if key, ok := configKey(r); ok && !shared.Add(key) {
					continue
				}
				docs = append(docs, a.render(r))
			}
			res.Summary.Resources += len(docs)

			block := yamlrender.Join(docs...)
			if len(valid) > 1 {
				block = fmt.Sprintf("# === %s DEPLOYMENT ===\n# Containers: %d\n%s", strings.ToUpper(d.AppName), d.ContainerCount(), block)
			}
			blocks = append(blocks, block)
		}
		if opts.StrictSeparators {
			sections = append(sections, yamlrender.Join(blocks...))
		} else {
			sections = append(sections, strings.Join(blocks, "\n"))
		}
	}

	res.YAML = yamlrender.Join(sections...)
	return res
}

func configKey(r kubeutils.Resource) (string, bool) {
	switch v := r.(type) {
	case kubeutils.ConfigMapResource:
		return "ConfigMap/" + model.EffectiveNamespace(v.ConfigMap.Namespace) + "/" + v.ConfigMap.Name, true
	case kubeutils.SecretResource:
		return "Secret/" + model.EffectiveNamespace(v.Secret.Namespace) + "/" + v.Secret.Name, true
	}
	return "", false
}

func header(s Summary) string {
	var b strings.Builder
	b.WriteString("# Kubernetes configuration generated by Kubernetes-config-generator\n")
	fmt.Fprintf(&b, "# Custom namespaces: %d\n", s.CustomNamespaces)
	fmt.Fprintf(&b, "# Deployments: %d\n", s.ValidDeployments)
	fmt.Fprintf(&b, "# Total containers: %d\n", s.Containers)
	return b.String()
}

type assembler struct {
	opts    Options
	log     logrus.FieldLogger
	catalog kubeutils.Catalog
}

func (a assembler) render(r kubeutils.Resource) string {
	if a.opts.Style == StyleKubectl {
		out, err := kubeutils.MarshalObject(r)
		if err == nil {
			return out
		}
		a.log.WithError(err).WithField("kind", r.Kind()).Warn("falling back to the classic renderer")
	}
	return kubeutils.RenderResource(r)
}

// standaloneConfig renders the ConfigMaps and Secrets that no valid
// deployment pulls into its own block.
func (a assembler) standaloneConfig(ws model.Workspace, valid []model.DeploymentConfig) []string {
	usedConfigMaps := map[int]bool{}
	usedSecrets := map[int]bool{}
	for _, d := range valid {
		for i, cm := range ws.ConfigMaps {
			for _, ref := range kubeutils.ReferencedConfigMaps(d, a.catalog) {
				if ref.Name == cm.Name && model.EffectiveNamespace(ref.Namespace) == model.EffectiveNamespace(cm.Namespace) {
					usedConfigMaps[i] = true
				}
			}
		}
		for i, s := range ws.Secrets {
			for _, ref := range kubeutils.ReferencedSecrets(d, a.catalog) {
				if ref.Name == s.Name && model.EffectiveNamespace(ref.Namespace) == model.EffectiveNamespace(s.Namespace) {
					usedSecrets[i] = true
				}
			}
		}
	}

	var docs []string
	for i, cm := range ws.ConfigMaps {
		if !usedConfigMaps[i] {
			docs = append(docs, a.render(kubeutils.ConfigMapResource{ConfigMap: kubeutils.BuildConfigMap(cm)}))
		}
	}
	for i, s := range ws.Secrets {
		if !usedSecrets[i] {
			docs = append(docs, a.render(kubeutils.SecretResource{Secret: kubeutils.BuildSecret(s)}))
		}
	}
	return docs
}
