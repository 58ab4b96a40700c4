package kubeutils

import (
	"encoding/base64"
	"sort"

	"Kubernetes-config-generator/internal/yamlrender"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	apiv1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// Encode lays r out as an ordered document: apiVersion, kind, metadata and
// then the kind specific body. String maps are written with sorted keys, and
// label maps put "app" first, so the same input always renders the same way.
func Encode(r Resource) *yamlrender.Map {
	switch v := r.(type) {
	case DeploymentResource:
		return encodeDeployment(v.Deployment)
	case ServiceResource:
		return encodeService(v.Service)
	case IngressResource:
		return encodeIngress(v.Ingress)
	case HPAResource:
		return encodeHPA(v.HPA)
	case ConfigMapResource:
		return encodeConfigMap(v.ConfigMap)
	case SecretResource:
		return encodeSecret(v.Secret)
	case NamespaceResource:
		return header("v1", "Namespace").Set("metadata", encodeMeta(v.Namespace.ObjectMeta))
	}
	return nil
}

// RenderResource is Encode followed by the YAML renderer.
func RenderResource(r Resource) string {
	return yamlrender.Render(Encode(r))
}

func header(apiVersion, kind string) *yamlrender.Map {
	return yamlrender.NewMap().Set("apiVersion", apiVersion).Set("kind", kind)
}

func encodeMeta(meta metav1.ObjectMeta) *yamlrender.Map {
	m := yamlrender.NewMap().Set("name", meta.Name)
	if meta.Namespace != "" {
		m.Set("namespace", meta.Namespace)
	}
	m.Set("labels", labelMap(meta.Labels))
	m.Set("annotations", sortedMap(meta.Annotations))
	return m
}

// labelMap returns nil for an empty map so the key is dropped.
func labelMap(labels map[string]string) *yamlrender.Map {
	if len(labels) == 0 {
		return nil
	}
	m := yamlrender.NewMap()
	if v, ok := labels[appLabel]; ok {
		m.Set(appLabel, v)
	}
	for _, k := range sortedKeys(labels) {
		if k != appLabel {
			m.Set(k, labels[k])
		}
	}
	return m
}

func sortedMap(in map[string]string) *yamlrender.Map {
	if len(in) == 0 {
		return nil
	}
	m := yamlrender.NewMap()
	for _, k := range sortedKeys(in) {
		m.Set(k, in[k])
	}
	return m
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encodeDeployment(d *appsv1.Deployment) *yamlrender.Map {
	podSpec := yamlrender.NewMap()
	containers := make([]*yamlrender.Map, 0, len(d.Spec.Template.Spec.Containers))
	for _, c := range d.Spec.Template.Spec.Containers {
		containers = append(containers, encodeContainer(c))
	}
	podSpec.Set("containers", containers)
	if d.Spec.Template.Spec.Volumes != nil {
		volumes := make([]*yamlrender.Map, 0, len(d.Spec.Template.Spec.Volumes))
		for _, v := range d.Spec.Template.Spec.Volumes {
			volumes = append(volumes, encodeVolume(v))
		}
		podSpec.Set("volumes", volumes)
	}

	spec := yamlrender.NewMap()
	if d.Spec.Replicas != nil {
		spec.Set("replicas", *d.Spec.Replicas)
	}
	if d.Spec.Selector != nil {
		spec.Set("selector", yamlrender.NewMap().Set("matchLabels", labelMap(d.Spec.Selector.MatchLabels)))
	}
	spec.Set("template", yamlrender.NewMap().
		Set("metadata", yamlrender.NewMap().Set("labels", labelMap(d.Spec.Template.Labels))).
		Set("spec", podSpec))

	return header("apps/v1", "Deployment").
		Set("metadata", encodeMeta(d.ObjectMeta)).
		Set("spec", spec)
}

func encodeContainer(c apiv1.Container) *yamlrender.Map {
	m := yamlrender.NewMap().Set("name", c.Name)
	if c.Image != "" {
		m.Set("image", c.Image)
	}
	if len(c.Ports) > 0 {
		ports := make([]*yamlrender.Map, 0, len(c.Ports))
		for _, p := range c.Ports {
			ports = append(ports, yamlrender.NewMap().Set("containerPort", p.ContainerPort))
		}
		m.Set("ports", ports)
	}
	if len(c.Env) > 0 {
		env := make([]*yamlrender.Map, 0, len(c.Env))
		for _, e := range c.Env {
			env = append(env, encodeEnv(e))
		}
		m.Set("env", env)
	}
	m.Set("resources", encodeResources(c.Resources))
	if len(c.VolumeMounts) > 0 {
		mounts := make([]*yamlrender.Map, 0, len(c.VolumeMounts))
		for _, vm := range c.VolumeMounts {
			mount := yamlrender.NewMap().Set("name", vm.Name).Set("mountPath", vm.MountPath)
			if vm.ReadOnly {
				mount.Set("readOnly", true)
			}
			mounts = append(mounts, mount)
		}
		m.Set("volumeMounts", mounts)
	}
	return m
}

func encodeEnv(e apiv1.EnvVar) *yamlrender.Map {
	m := yamlrender.NewMap().Set("name", e.Name)
	switch {
	case e.ValueFrom != nil && e.ValueFrom.SecretKeyRef != nil:
		ref := e.ValueFrom.SecretKeyRef
		m.Set("valueFrom", yamlrender.NewMap().Set("secretKeyRef",
			yamlrender.NewMap().Set("name", ref.Name).Set("key", ref.Key)))
	case e.ValueFrom != nil && e.ValueFrom.ConfigMapKeyRef != nil:
		ref := e.ValueFrom.ConfigMapKeyRef
		m.Set("valueFrom", yamlrender.NewMap().Set("configMapKeyRef",
			yamlrender.NewMap().Set("name", ref.Name).Set("key", ref.Key)))
	default:
		m.Set("value", e.Value)
	}
	return m
}

func encodeResources(r apiv1.ResourceRequirements) *yamlrender.Map {
	requests := encodeResourceList(r.Requests)
	limits := encodeResourceList(r.Limits)
	if requests == nil && limits == nil {
		return nil
	}
	return yamlrender.NewMap().Set("requests", requests).Set("limits", limits)
}

func encodeResourceList(list apiv1.ResourceList) *yamlrender.Map {
	if len(list) == 0 {
		return nil
	}
	m := yamlrender.NewMap()
	if q, ok := list[apiv1.ResourceCPU]; ok {
		m.Set("cpu", q.String())
	}
	if q, ok := list[apiv1.ResourceMemory]; ok {
		m.Set("memory", q.String())
	}
	return m
}

func encodeVolume(v apiv1.Volume) *yamlrender.Map {
	m := yamlrender.NewMap().Set("name", v.Name)
	switch {
	case v.ConfigMap != nil:
		m.Set("configMap", yamlrender.NewMap().Set("name", v.ConfigMap.Name))
	case v.Secret != nil:
		m.Set("secret", yamlrender.NewMap().Set("secretName", v.Secret.SecretName))
	case v.EmptyDir != nil:
		m.Set("emptyDir", yamlrender.NewMap())
	}
	return m
}

func encodeService(s *apiv1.Service) *yamlrender.Map {
	ports := make([]*yamlrender.Map, 0, len(s.Spec.Ports))
	for _, p := range s.Spec.Ports {
		port := yamlrender.NewMap().
			Set("port", p.Port).
			Set("targetPort", intOrString(p.TargetPort)).
			Set("protocol", string(p.Protocol))
		if p.Name != "" {
			port.Set("name", p.Name)
		}
		ports = append(ports, port)
	}

	spec := yamlrender.NewMap().
		Set("selector", labelMap(s.Spec.Selector)).
		Set("type", string(s.Spec.Type)).
		Set("ports", ports)

	return header("v1", "Service").
		Set("metadata", encodeMeta(s.ObjectMeta)).
		Set("spec", spec)
}

func intOrString(v intstr.IntOrString) any {
	if v.Type == intstr.String {
		return v.StrVal
	}
	return v.IntVal
}

func encodeIngress(ing *networkingv1.Ingress) *yamlrender.Map {
	spec := yamlrender.NewMap()
	if ing.Spec.IngressClassName != nil {
		spec.Set("ingressClassName", *ing.Spec.IngressClassName)
	}
	if len(ing.Spec.TLS) > 0 {
		tls := make([]*yamlrender.Map, 0, len(ing.Spec.TLS))
		for _, t := range ing.Spec.TLS {
			entry := yamlrender.NewMap()
			if len(t.Hosts) > 0 {
				entry.Set("hosts", t.Hosts)
			}
			if t.SecretName != "" {
				entry.Set("secretName", t.SecretName)
			}
			tls = append(tls, entry)
		}
		spec.Set("tls", tls)
	}

	rules := make([]*yamlrender.Map, 0, len(ing.Spec.Rules))
	for _, r := range ing.Spec.Rules {
		rule := yamlrender.NewMap()
		if r.Host != "" {
			rule.Set("host", r.Host)
		}
		if r.HTTP != nil {
			paths := make([]*yamlrender.Map, 0, len(r.HTTP.Paths))
			for _, p := range r.HTTP.Paths {
				paths = append(paths, encodeIngressPath(p))
			}
			rule.Set("http", yamlrender.NewMap().Set("paths", paths))
		}
		rules = append(rules, rule)
	}
	spec.Set("rules", rules)

	return header("networking.k8s.io/v1", "Ingress").
		Set("metadata", encodeMeta(ing.ObjectMeta)).
		Set("spec", spec)
}

func encodeIngressPath(p networkingv1.HTTPIngressPath) *yamlrender.Map {
	m := yamlrender.NewMap().Set("path", p.Path)
	if p.PathType != nil {
		m.Set("pathType", string(*p.PathType))
	}
	if p.Backend.Service != nil {
		m.Set("backend", yamlrender.NewMap().Set("service", yamlrender.NewMap().
			Set("name", p.Backend.Service.Name).
			Set("port", yamlrender.NewMap().Set("number", p.Backend.Service.Port.Number))))
	}
	return m
}

func encodeHPA(h *autoscalingv2.HorizontalPodAutoscaler) *yamlrender.Map {
	ref := h.Spec.ScaleTargetRef
	spec := yamlrender.NewMap().
		Set("scaleTargetRef", yamlrender.NewMap().
			Set("apiVersion", ref.APIVersion).
			Set("kind", ref.Kind).
			Set("name", ref.Name))
	if h.Spec.MinReplicas != nil {
		spec.Set("minReplicas", *h.Spec.MinReplicas)
	}
	spec.Set("maxReplicas", h.Spec.MaxReplicas)

	if h.Spec.Metrics != nil {
		metrics := make([]*yamlrender.Map, 0, len(h.Spec.Metrics))
		for _, ms := range h.Spec.Metrics {
			metric := yamlrender.NewMap().Set("type", string(ms.Type))
			if ms.Resource != nil {
				target := yamlrender.NewMap().Set("type", string(ms.Resource.Target.Type))
				if ms.Resource.Target.AverageUtilization != nil {
					target.Set("averageUtilization", *ms.Resource.Target.AverageUtilization)
				}
				metric.Set("resource", yamlrender.NewMap().
					Set("name", string(ms.Resource.Name)).
					Set("target", target))
			}
			metrics = append(metrics, metric)
		}
		spec.Set("metrics", metrics)
	}

	return header("autoscaling/v2", "HorizontalPodAutoscaler").
		Set("metadata", encodeMeta(h.ObjectMeta)).
		Set("spec", spec)
}

func encodeConfigMap(cm *apiv1.ConfigMap) *yamlrender.Map {
	m := header("v1", "ConfigMap").Set("metadata", encodeMeta(cm.ObjectMeta))
	if cm.Data != nil {
		data := yamlrender.NewMap()
		for _, k := range sortedKeys(cm.Data) {
			data.Set(k, cm.Data[k])
		}
		m.Set("data", data)
	}
	return m
}

// encodeSecret writes every value as standard base64 without line wrapping.
func encodeSecret(s *apiv1.Secret) *yamlrender.Map {
	m := header("v1", "Secret").
		Set("metadata", encodeMeta(s.ObjectMeta)).
		Set("type", string(s.Type))
	if s.Data != nil {
		data := yamlrender.NewMap()
		for _, k := range sortedKeys(s.Data) {
			data.Set(k, base64.StdEncoding.EncodeToString(s.Data[k]))
		}
		m.Set("data", data)
	}
	return m
}
