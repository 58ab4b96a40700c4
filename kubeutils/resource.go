package kubeutils

import (
	"strings"

	"Kubernetes-config-generator/model"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	v1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
)

// Resource is one Kubernetes object produced from the configuration model.
// The set of implementations is closed; Encode switches over all of them.
type Resource interface {
	Kind() string
	Name() string
	Object() runtime.Object
	isResource()
}

type DeploymentResource struct {
	Deployment *appsv1.Deployment
}

type ServiceResource struct {
	Service *v1.Service
}

type IngressResource struct {
	Ingress *networkingv1.Ingress
}

type HPAResource struct {
	HPA *autoscalingv2.HorizontalPodAutoscaler
}

type ConfigMapResource struct {
	ConfigMap *v1.ConfigMap
}

type SecretResource struct {
	Secret *v1.Secret
}

type NamespaceResource struct {
	Namespace *v1.Namespace
}

func (r DeploymentResource) Kind() string           { return "Deployment" }
func (r DeploymentResource) Name() string           { return r.Deployment.Name }
func (r DeploymentResource) Object() runtime.Object { return r.Deployment }
func (DeploymentResource) isResource()              {}

func (r ServiceResource) Kind() string           { return "Service" }
func (r ServiceResource) Name() string           { return r.Service.Name }
func (r ServiceResource) Object() runtime.Object { return r.Service }
func (ServiceResource) isResource()              {}

func (r IngressResource) Kind() string           { return "Ingress" }
func (r IngressResource) Name() string           { return r.Ingress.Name }
func (r IngressResource) Object() runtime.Object { return r.Ingress }
func (IngressResource) isResource()              {}

func (r HPAResource) Kind() string           { return "HorizontalPodAutoscaler" }
func (r HPAResource) Name() string           { return r.HPA.Name }
func (r HPAResource) Object() runtime.Object { return r.HPA }
func (HPAResource) isResource()              {}

func (r ConfigMapResource) Kind() string           { return "ConfigMap" }
func (r ConfigMapResource) Name() string           { return r.ConfigMap.Name }
func (r ConfigMapResource) Object() runtime.Object { return r.ConfigMap }
func (ConfigMapResource) isResource()              {}

func (r SecretResource) Kind() string           { return "Secret" }
func (r SecretResource) Name() string           { return r.Secret.Name }
func (r SecretResource) Object() runtime.Object { return r.Secret }
func (SecretResource) isResource()              {}

func (r NamespaceResource) Kind() string           { return "Namespace" }
func (r NamespaceResource) Name() string           { return r.Namespace.Name }
func (r NamespaceResource) Object() runtime.Object { return r.Namespace }
func (NamespaceResource) isResource()              {}

func int32Ptr(i int32) *int32 { return &i }

func resolveReplicaPtr(replica int32) *int32 {
	if replica <= 0 {
		replica = 1
	}
	return &replica
}

// ConfigResource turns the free text CPU/memory pairs into a typed
// requirement. Blank or unparsable quantities are left out.
func ConfigResource(req model.ResourceRequirements) v1.ResourceRequirements {
	return v1.ResourceRequirements{
		Requests: resourceList(req.Requests),
		Limits:   resourceList(req.Limits),
	}
}

func resourceList(values model.ResourceValues) v1.ResourceList {
	list := v1.ResourceList{}
	if q, ok := parseQuantity(values.CPU); ok {
		list[v1.ResourceCPU] = q
	}
	if q, ok := parseQuantity(values.Memory); ok {
		list[v1.ResourceMemory] = q
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

func parseQuantity(s string) (resource.Quantity, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return resource.Quantity{}, false
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return resource.Quantity{}, false
	}
	return q, true
}

// ValidQuantity reports whether s is empty or a well formed quantity.
func ValidQuantity(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := parseQuantity(s)
	return ok
}
