package kubeutils

import (
	"strings"

	"Kubernetes-config-generator/model"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func IngressName(appName string) string {
	return appName + "-ingress"
}

// BuildIngress returns nil when the ingress is disabled or has no rules.
// Rules sharing a host are folded into one rule with several paths.
func BuildIngress(d model.DeploymentConfig) *networkingv1.Ingress {
	if !d.Ingress.Enabled || len(d.Ingress.Rules) == 0 {
		return nil
	}

	var rules []networkingv1.IngressRule
	byHost := map[string]int{}
	for _, r := range d.Ingress.Rules {
		path := ingressPath(d, r)
		idx, ok := byHost[r.Host]
		if !ok {
			rules = append(rules, networkingv1.IngressRule{
				Host: r.Host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{},
				},
			})
			idx = len(rules) - 1
			byHost[r.Host] = idx
		}
		rules[idx].HTTP.Paths = append(rules[idx].HTTP.Paths, path)
	}

	ingress := &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        IngressName(d.AppName),
			Namespace:   d.Namespace,
			Labels:      appSelector(d.AppName),
			Annotations: cloneMap(d.Ingress.Annotations),
		},
		Spec: networkingv1.IngressSpec{
			Rules: rules,
		},
	}
	if d.Ingress.ClassName != "" {
		className := d.Ingress.ClassName
		ingress.Spec.IngressClassName = &className
	}
	for _, t := range d.Ingress.TLS {
		if t.SecretName == "" && len(t.Hosts) == 0 {
			continue
		}
		ingress.Spec.TLS = append(ingress.Spec.TLS, networkingv1.IngressTLS{
			Hosts:      append([]string(nil), t.Hosts...),
			SecretName: t.SecretName,
		})
	}
	return ingress
}

func ingressPath(d model.DeploymentConfig, r model.IngressRule) networkingv1.HTTPIngressPath {
	path := r.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	pathType := networkingv1.PathTypePrefix
	switch networkingv1.PathType(r.PathType) {
	case networkingv1.PathTypeExact, networkingv1.PathTypeImplementationSpecific:
		pathType = networkingv1.PathType(r.PathType)
	}

	service := r.ServiceName
	if service == "" {
		service = ServiceName(d.AppName)
	}
	port := r.ServicePort
	if port <= 0 {
		port = d.EffectiveServicePort()
	}

	return networkingv1.HTTPIngressPath{
		Path:     path,
		PathType: &pathType,
		Backend: networkingv1.IngressBackend{
			Service: &networkingv1.IngressServiceBackend{
				Name: service,
				Port: networkingv1.ServiceBackendPort{
					Number: port,
				},
			},
		},
	}
}
