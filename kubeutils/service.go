package kubeutils

import (
	"Kubernetes-config-generator/model"

	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func ServiceName(appName string) string {
	return appName + "-service"
}

func BuildService(d model.DeploymentConfig) *apiv1.Service {
	serviceType := apiv1.ServiceType(d.ServiceType)
	if serviceType == "" {
		serviceType = apiv1.ServiceTypeClusterIP
	}
	return &apiv1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ServiceName(d.AppName),
			Namespace: d.Namespace,
			Labels:    appSelector(d.AppName),
		},
		Spec: apiv1.ServiceSpec{
			Selector: appSelector(d.AppName),
			Type:     serviceType,
			Ports:    BuildServicePorts(d),
		},
	}
}

// BuildServicePorts exposes the main port as "http" plus one extra port for
// every container listening somewhere other than the target port. A config
// without a containers field at all gets a single unnamed port.
func BuildServicePorts(d model.DeploymentConfig) []apiv1.ServicePort {
	target := containerPort(d)
	main := apiv1.ServicePort{
		Port:       d.EffectiveServicePort(),
		TargetPort: intstr.FromInt32(target),
		Protocol:   apiv1.ProtocolTCP,
	}
	if d.Containers == nil {
		return []apiv1.ServicePort{main}
	}

	main.Name = "http"
	ports := []apiv1.ServicePort{main}
	for i, c := range d.Containers {
		if c.Port <= 0 || c.Port == target {
			continue
		}
		ports = append(ports, apiv1.ServicePort{
			Name:       ContainerName(c, i) + "-port",
			Port:       c.Port,
			TargetPort: intstr.FromInt32(c.Port),
			Protocol:   apiv1.ProtocolTCP,
		})
	}
	return ports
}
