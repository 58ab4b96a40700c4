package kubeutils

import (
	"Kubernetes-config-generator/model"

	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func BuildNamespace(ns model.Namespace) *apiv1.Namespace {
	return &apiv1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        ns.Name,
			Labels:      cloneMap(ns.Labels),
			Annotations: cloneMap(ns.Annotations),
		},
	}
}
