package kubeutils

import (
	"strings"

	"Kubernetes-config-generator/model"
)

// MissingNamePlaceholder stands in for a deployment without an app name.
const MissingNamePlaceholder = "# Set an application name to generate the Deployment and Service for this entry"

// Catalog holds the ConfigMaps and Secrets a deployment may reference.
type Catalog struct {
	ConfigMaps []model.ConfigMap
	Secrets    []model.Secret
}

func CatalogFrom(ws model.Workspace) Catalog {
	return Catalog{ConfigMaps: ws.ConfigMaps, Secrets: ws.Secrets}
}

// Bundle is everything one deployment contributes to the export. Exactly one
// of Resources and Placeholder is set.
type Bundle struct {
	Resources   []Resource
	Placeholder string
}

// BuildResources produces the ordered resources for d: Deployment, Service,
// the optional Ingress and HPA, then the referenced ConfigMaps and Secrets
// that exist in the deployment's namespace.
func BuildResources(d model.DeploymentConfig, catalog Catalog) Bundle {
	if strings.TrimSpace(d.AppName) == "" {
		return Bundle{Placeholder: MissingNamePlaceholder}
	}

	resources := []Resource{
		DeploymentResource{Deployment: BuildDeployment(d)},
		ServiceResource{Service: BuildService(d)},
	}
	if ing := BuildIngress(d); ing != nil {
		resources = append(resources, IngressResource{Ingress: ing})
	}
	if hpa := BuildHPA(d); hpa != nil {
		resources = append(resources, HPAResource{HPA: hpa})
	}

	for _, cm := range ReferencedConfigMaps(d, catalog) {
		resources = append(resources, ConfigMapResource{ConfigMap: BuildConfigMap(cm)})
	}
	for _, s := range ReferencedSecrets(d, catalog) {
		resources = append(resources, SecretResource{Secret: BuildSecret(s)})
	}
	return Bundle{Resources: resources}
}

func ReferencedConfigMaps(d model.DeploymentConfig, catalog Catalog) []model.ConfigMap {
	wanted := nameSet(d.ReferencedNames(model.EnvSourceConfigMap))
	var out []model.ConfigMap
	for _, cm := range catalog.ConfigMaps {
		if sameNamespace(cm.Namespace, d.Namespace) && wanted[cm.Name] {
			out = append(out, cm)
		}
	}
	return out
}

func ReferencedSecrets(d model.DeploymentConfig, catalog Catalog) []model.Secret {
	wanted := nameSet(d.ReferencedNames(model.EnvSourceSecret))
	var out []model.Secret
	for _, s := range catalog.Secrets {
		if sameNamespace(s.Namespace, d.Namespace) && wanted[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func sameNamespace(a, b string) bool {
	return model.EffectiveNamespace(a) == model.EffectiveNamespace(b)
}
