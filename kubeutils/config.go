package kubeutils

import (
	"Kubernetes-config-generator/model"

	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func BuildConfigMap(cm model.ConfigMap) *apiv1.ConfigMap {
	return &apiv1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        cm.Name,
			Namespace:   cm.Namespace,
			Labels:      cloneMap(cm.Labels),
			Annotations: cloneMap(cm.Annotations),
		},
		Data: cloneMap(cm.Data),
	}
}

// BuildSecret keeps the plain bytes; base64 is applied when the object is
// encoded, the same way the API machinery serializes []byte.
func BuildSecret(s model.Secret) *apiv1.Secret {
	secretType := apiv1.SecretType(s.Type)
	if secretType == "" {
		secretType = apiv1.SecretTypeOpaque
	}
	data := make(map[string][]byte, len(s.Data))
	for k, v := range s.Data {
		data[k] = []byte(v)
	}
	return &apiv1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        s.Name,
			Namespace:   s.Namespace,
			Labels:      cloneMap(s.Labels),
			Annotations: cloneMap(s.Annotations),
		},
		Type: secretType,
		Data: data,
	}
}
