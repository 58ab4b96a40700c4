package workspace

import (
	"fmt"
	"strings"
	"time"

	"Kubernetes-config-generator/model"

	"k8s.io/apimachinery/pkg/util/validation"
)

// AddNamespace registers a new custom namespace. The name must be a DNS-1123
// label that is neither taken nor reserved by the cluster.
func AddNamespace(ws model.Workspace, ns model.Namespace) (model.Workspace, error) {
	ns.Name = strings.TrimSpace(ns.Name)
	if errs := validation.IsDNS1123Label(ns.Name); len(errs) > 0 {
		return ws, fmt.Errorf("namespace %q: %w: %s", ns.Name, ErrInvalidName, strings.Join(errs, "; "))
	}
	if model.IsReservedNamespace(ns.Name) {
		return ws, fmt.Errorf("namespace %q: %w", ns.Name, ErrReservedNamespace)
	}
	if ws.HasNamespace(ns.Name) {
		return ws, fmt.Errorf("namespace %q: %w", ns.Name, ErrNamespaceExists)
	}
	if ns.CreatedAt.IsZero() {
		ns.CreatedAt = time.Now().UTC()
	}

	out := ws.DeepCopy()
	out.Namespaces = append(out.Namespaces, ns.DeepCopy())
	return out, nil
}

// DeleteNamespace drops a namespace and moves everything that lived in it to
// "default".
func DeleteNamespace(ws model.Workspace, name string) (model.Workspace, error) {
	if name == model.DefaultNamespaceName {
		return ws, ErrDefaultNamespace
	}
	if !ws.HasNamespace(name) {
		return ws, fmt.Errorf("namespace %q: %w", name, ErrNamespaceNotFound)
	}

	out := ws.DeepCopy()
	namespaces := out.Namespaces[:0]
	for _, ns := range out.Namespaces {
		if ns.Name != name {
			namespaces = append(namespaces, ns)
		}
	}
	out.Namespaces = namespaces

	for i := range out.Deployments {
		if out.Deployments[i].Namespace == name {
			out.Deployments[i].Namespace = model.DefaultNamespaceName
		}
	}
	for i := range out.ConfigMaps {
		if out.ConfigMaps[i].Namespace == name {
			out.ConfigMaps[i].Namespace = model.DefaultNamespaceName
		}
	}
	for i := range out.Secrets {
		if out.Secrets[i].Namespace == name {
			out.Secrets[i].Namespace = model.DefaultNamespaceName
		}
	}
	if !out.HasNamespace(model.DefaultNamespaceName) {
		out.Namespaces = append([]model.Namespace{model.DefaultNamespace()}, out.Namespaces...)
	}
	return out, nil
}
