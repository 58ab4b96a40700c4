package workspace

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"Kubernetes-config-generator/kubeutils"
	"Kubernetes-config-generator/model"

	mapset "github.com/deckarep/golang-set/v2"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Warning is an advisory finding. Warnings never block an export.
type Warning struct {
	Deployment string `json:"deployment,omitempty"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (w Warning) String() string {
	if w.Deployment == "" {
		return fmt.Sprintf("%s: %s", w.Field, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Deployment, w.Field, w.Message)
}

// Reference is a ConfigMap or Secret a deployment points at that does not
// exist in the deployment's namespace.
type Reference struct {
	Deployment string              `json:"deployment"`
	Namespace  string              `json:"namespace"`
	Kind       model.EnvSourceKind `json:"kind"`
	Name       string              `json:"name"`
	Via        string              `json:"via"`
}

func (r Reference) String() string {
	return fmt.Sprintf("%s (%s) references missing %s %s/%s", r.Deployment, r.Via, r.Kind, r.Namespace, r.Name)
}

func deploymentLabel(d model.DeploymentConfig, i int) string {
	if strings.TrimSpace(d.AppName) != "" {
		return d.AppName
	}
	return fmt.Sprintf("deployment #%d", i+1)
}

// Validate runs the advisory checks the editor shows next to the form.
func Validate(ws model.Workspace) []Warning {
	var warnings []Warning
	for i, d := range ws.Deployments {
		label := deploymentLabel(d, i)
		add := func(field, format string, args ...any) {
			warnings = append(warnings, Warning{Deployment: label, Field: field, Message: fmt.Sprintf(format, args...)})
		}

		if strings.TrimSpace(d.AppName) == "" {
			add("appName", "application name is empty; no resources are generated")
		} else if errs := validation.IsDNS1123Subdomain(d.AppName); len(errs) > 0 {
			add("appName", "%s", strings.Join(errs, "; "))
		}
		if !ws.HasNamespace(model.EffectiveNamespace(d.Namespace)) {
			add("namespace", "namespace %q does not exist", d.Namespace)
		}
		if d.Replicas < 1 {
			add("replicas", "replicas must be at least 1, got %d", d.Replicas)
		}
		checkPort(add, "servicePort", d.EffectiveServicePort())
		checkPort(add, "targetPort", d.TargetPort)

		if len(d.Containers) == 0 {
			if strings.TrimSpace(d.Image) == "" {
				add("image", "container image is empty")
			}
			checkResources(add, "resources", d.Resources)
		}
		for j, c := range d.Containers {
			name := kubeutils.ContainerName(c, j)
			if strings.TrimSpace(c.Image) == "" {
				add("containers."+name+".image", "container image is empty")
			}
			if c.Port != 0 {
				checkPort(add, "containers."+name+".port", c.Port)
			}
			checkResources(add, "containers."+name+".resources", c.Resources)
		}

		for _, k := range sortedKeys(d.Labels) {
			v := d.Labels[k]
			if errs := validation.IsQualifiedName(k); len(errs) > 0 {
				add("labels", "invalid label key %q: %s", k, strings.Join(errs, "; "))
			}
			if errs := validation.IsValidLabelValue(v); len(errs) > 0 {
				add("labels", "invalid value for label %q: %s", k, strings.Join(errs, "; "))
			}
		}
		if v, ok := d.Labels["app"]; ok && v != d.AppName {
			add("labels", "label app=%q does not match the selector app=%q", v, d.AppName)
		}

		for _, k := range sortedKeys(d.Annotations) {
			if !utf8.ValidString(k) || !utf8.ValidString(d.Annotations[k]) {
				add("annotations", lossyText, k)
			}
		}

		if d.Ingress.Enabled && len(d.Ingress.Rules) == 0 {
			add("ingress", "ingress is enabled but has no rules; it is not generated")
		}
		if d.HPA.Enabled {
			if d.HPA.MinReplicas < 1 {
				add("hpa.minReplicas", "minimum replicas must be at least 1")
			}
			if d.HPA.MaxReplicas <= d.HPA.MinReplicas {
				add("hpa.maxReplicas", "maximum replicas must be greater than minimum replicas")
			}
			if d.HPA.TargetCPUUtilization == nil && d.HPA.TargetMemoryUtilization == nil {
				add("hpa", "set a CPU or memory utilization target")
			}
		}
	}

	for _, cm := range ws.ConfigMaps {
		field := "configMaps." + model.EffectiveNamespace(cm.Namespace) + "/" + cm.Name
		for _, k := range sortedKeys(cm.Data) {
			if !utf8.ValidString(k) || !utf8.ValidString(cm.Data[k]) {
				warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf(lossyText, k)})
			}
		}
	}
	return warnings
}

const lossyText = "entry %q is not valid UTF-8; invalid bytes are exported as U+FFFD, use a Secret for binary data"

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkPort(add func(string, string, ...any), field string, port int32) {
	if port < 1 || port > 65535 {
		add(field, "port must be between 1 and 65535, got %d", port)
	}
}

func checkResources(add func(string, string, ...any), field string, r model.ResourceRequirements) {
	values := []struct {
		name, value string
	}{
		{"requests.cpu", r.Requests.CPU},
		{"requests.memory", r.Requests.Memory},
		{"limits.cpu", r.Limits.CPU},
		{"limits.memory", r.Limits.Memory},
	}
	for _, v := range values {
		if !kubeutils.ValidQuantity(v.value) {
			add(field+"."+v.name, "%q is not a valid quantity and is left out", v.value)
		}
	}
}

// DanglingReferences reports env and volume references to ConfigMaps and
// Secrets that are missing from the deployment's namespace. Nothing is
// cleaned up; the export keeps the reference as written.
func DanglingReferences(ws model.Workspace) []Reference {
	configMaps := mapset.NewThreadUnsafeSet[string]()
	for _, cm := range ws.ConfigMaps {
		configMaps.Add(model.EffectiveNamespace(cm.Namespace) + "/" + cm.Name)
	}
	secrets := mapset.NewThreadUnsafeSet[string]()
	for _, s := range ws.Secrets {
		secrets.Add(model.EffectiveNamespace(s.Namespace) + "/" + s.Name)
	}

	var dangling []Reference
	for i, d := range ws.Deployments {
		ns := model.EffectiveNamespace(d.Namespace)
		for _, ref := range d.References() {
			known := configMaps
			if ref.Kind == model.EnvSourceSecret {
				known = secrets
			}
			if known.Contains(ns + "/" + ref.Name) {
				continue
			}
			dangling = append(dangling, Reference{
				Deployment: deploymentLabel(d, i),
				Namespace:  ns,
				Kind:       ref.Kind,
				Name:       ref.Name,
				Via:        ref.Via,
			})
		}
	}
	return dangling
}
