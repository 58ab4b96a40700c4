package workspace

import (
	"fmt"
	"strings"

	"Kubernetes-config-generator/model"

	"k8s.io/apimachinery/pkg/util/validation"
)

func checkObjectName(kind, name, namespace string, ws model.Workspace) error {
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return fmt.Errorf("%s %q: %w: %s", kind, name, ErrInvalidName, strings.Join(errs, "; "))
	}
	if !ws.HasNamespace(model.EffectiveNamespace(namespace)) {
		return fmt.Errorf("%s %q: namespace %q: %w", kind, name, namespace, ErrNamespaceNotFound)
	}
	return nil
}

func findConfigMap(ws model.Workspace, namespace, name string) int {
	for i, cm := range ws.ConfigMaps {
		if cm.Name == name && model.EffectiveNamespace(cm.Namespace) == model.EffectiveNamespace(namespace) {
			return i
		}
	}
	return -1
}

func findSecret(ws model.Workspace, namespace, name string) int {
	for i, s := range ws.Secrets {
		if s.Name == name && model.EffectiveNamespace(s.Namespace) == model.EffectiveNamespace(namespace) {
			return i
		}
	}
	return -1
}

func AddConfigMap(ws model.Workspace, cm model.ConfigMap) (model.Workspace, error) {
	cm.Namespace = model.EffectiveNamespace(cm.Namespace)
	if err := checkObjectName("configmap", cm.Name, cm.Namespace, ws); err != nil {
		return ws, err
	}
	if findConfigMap(ws, cm.Namespace, cm.Name) >= 0 {
		return ws, fmt.Errorf("configmap %s/%s: %w", cm.Namespace, cm.Name, ErrConfigMapExists)
	}
	out := ws.DeepCopy()
	out.ConfigMaps = append(out.ConfigMaps, cm.DeepCopy())
	return out, nil
}

// UpdateConfigMap replaces the ConfigMap with the same namespace and name.
func UpdateConfigMap(ws model.Workspace, cm model.ConfigMap) (model.Workspace, error) {
	idx := findConfigMap(ws, cm.Namespace, cm.Name)
	if idx < 0 {
		return ws, fmt.Errorf("configmap %s/%s: %w", cm.Namespace, cm.Name, ErrConfigMapNotFound)
	}
	out := ws.DeepCopy()
	cm.Namespace = model.EffectiveNamespace(cm.Namespace)
	out.ConfigMaps[idx] = cm.DeepCopy()
	return out, nil
}

// DeleteConfigMap leaves deployment references alone; they surface through
// DanglingReferences instead.
func DeleteConfigMap(ws model.Workspace, namespace, name string) (model.Workspace, error) {
	idx := findConfigMap(ws, namespace, name)
	if idx < 0 {
		return ws, fmt.Errorf("configmap %s/%s: %w", namespace, name, ErrConfigMapNotFound)
	}
	out := ws.DeepCopy()
	out.ConfigMaps = append(out.ConfigMaps[:idx], out.ConfigMaps[idx+1:]...)
	return out, nil
}

func AddSecret(ws model.Workspace, s model.Secret) (model.Workspace, error) {
	s.Namespace = model.EffectiveNamespace(s.Namespace)
	if err := checkObjectName("secret", s.Name, s.Namespace, ws); err != nil {
		return ws, err
	}
	if findSecret(ws, s.Namespace, s.Name) >= 0 {
		return ws, fmt.Errorf("secret %s/%s: %w", s.Namespace, s.Name, ErrSecretExists)
	}
	if s.Type == "" {
		s.Type = model.SecretTypeOpaque
	}
	out := ws.DeepCopy()
	out.Secrets = append(out.Secrets, s.DeepCopy())
	return out, nil
}

func UpdateSecret(ws model.Workspace, s model.Secret) (model.Workspace, error) {
	idx := findSecret(ws, s.Namespace, s.Name)
	if idx < 0 {
		return ws, fmt.Errorf("secret %s/%s: %w", s.Namespace, s.Name, ErrSecretNotFound)
	}
	out := ws.DeepCopy()
	s.Namespace = model.EffectiveNamespace(s.Namespace)
	out.Secrets[idx] = s.DeepCopy()
	return out, nil
}

func DeleteSecret(ws model.Workspace, namespace, name string) (model.Workspace, error) {
	idx := findSecret(ws, namespace, name)
	if idx < 0 {
		return ws, fmt.Errorf("secret %s/%s: %w", namespace, name, ErrSecretNotFound)
	}
	out := ws.DeepCopy()
	out.Secrets = append(out.Secrets[:idx], out.Secrets[idx+1:]...)
	return out, nil
}
