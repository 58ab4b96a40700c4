package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultNamespaceName = "default"

// ReservedNamespaces are created by the cluster itself and are never exported.
var ReservedNamespaces = []string{
	"default",
	"kube-system",
	"kube-public",
	"kube-node-lease",
}

func IsReservedNamespace(name string) bool {
	for _, n := range ReservedNamespaces {
		if n == name {
			return true
		}
	}
	return false
}

// EffectiveNamespace maps a blank namespace to "default".
func EffectiveNamespace(ns string) string {
	if ns == "" {
		return DefaultNamespaceName
	}
	return ns
}

func DefaultNamespace() Namespace {
	return Namespace{
		Name:      DefaultNamespaceName,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWorkspace() Workspace {
	return Workspace{
		Namespaces: []Namespace{DefaultNamespace()},
	}
}

func int32Ptr(i int32) *int32 { return &i }

// NewDeploymentConfig returns the deployment a user gets when pressing "add".
func NewDeploymentConfig() DeploymentConfig {
	return DeploymentConfig{
		ID:          uuid.NewString(),
		Namespace:   DefaultNamespaceName,
		Port:        80,
		Replicas:    1,
		ServiceType: ServiceTypeClusterIP,
		ServicePort: 80,
		TargetPort:  80,
		Labels:      map[string]string{},
		Annotations: map[string]string{},
		Resources: ResourceRequirements{
			Requests: ResourceValues{CPU: "100m", Memory: "128Mi"},
			Limits:   ResourceValues{CPU: "500m", Memory: "512Mi"},
		},
		Containers: []ContainerConfig{},
		Ingress: IngressConfig{
			ClassName: "nginx",
		},
		HPA: HPAConfig{
			MinReplicas:          1,
			MaxReplicas:          5,
			TargetCPUUtilization: int32Ptr(80),
		},
	}
}

// IsValid reports whether the deployment has enough data to produce resources.
// EffectiveServicePort is the port the Service exposes: ServicePort when set,
// the deployment's port otherwise.
func (d DeploymentConfig) EffectiveServicePort() int32 {
	if d.ServicePort > 0 {
		return d.ServicePort
	}
	return d.Port
}

func (d DeploymentConfig) IsValid() bool {
	return strings.TrimSpace(d.AppName) != ""
}

// ContainerCount is the number of containers the deployment renders,
// counting the synthesized legacy container.
func (d DeploymentConfig) ContainerCount() int {
	if len(d.Containers) == 0 {
		return 1
	}
	return len(d.Containers)
}

func (w Workspace) HasNamespace(name string) bool {
	for _, ns := range w.Namespaces {
		if ns.Name == name {
			return true
		}
	}
	return false
}

// CustomNamespaces drops the cluster-managed namespaces.
func (w Workspace) CustomNamespaces() []Namespace {
	var out []Namespace
	for _, ns := range w.Namespaces {
		if IsReservedNamespace(ns.Name) {
			continue
		}
		out = append(out, ns)
	}
	return out
}

func (w Workspace) ValidDeployments() []DeploymentConfig {
	var out []DeploymentConfig
	for _, d := range w.Deployments {
		if d.IsValid() {
			out = append(out, d)
		}
	}
	return out
}

// IsPristine is the state of a freshly opened editor: nothing but the
// default namespace.
func (w Workspace) IsPristine() bool {
	if len(w.Deployments) > 0 || len(w.ConfigMaps) > 0 || len(w.Secrets) > 0 {
		return false
	}
	for _, ns := range w.Namespaces {
		if ns.Name != DefaultNamespaceName {
			return false
		}
	}
	return len(w.Namespaces) <= 1
}
