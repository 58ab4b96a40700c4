package kubeutils

import (
	"Kubernetes-config-generator/model"

	autoscalingv2 "k8s.io/api/autoscaling/v2"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func HPAName(appName string) string {
	return appName + "-hpa"
}

// BuildHPA returns nil unless autoscaling is enabled. Out of range values are
// emitted as configured; workspace.Validate is what reports them.
func BuildHPA(d model.DeploymentConfig) *autoscalingv2.HorizontalPodAutoscaler {
	if !d.HPA.Enabled {
		return nil
	}

	var metrics []autoscalingv2.MetricSpec
	if d.HPA.TargetCPUUtilization != nil {
		metrics = append(metrics, utilizationMetric(apiv1.ResourceCPU, *d.HPA.TargetCPUUtilization))
	}
	if d.HPA.TargetMemoryUtilization != nil {
		metrics = append(metrics, utilizationMetric(apiv1.ResourceMemory, *d.HPA.TargetMemoryUtilization))
	}

	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      HPAName(d.AppName),
			Namespace: d.Namespace,
			Labels:    appSelector(d.AppName),
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       d.AppName,
			},
			MinReplicas: int32Ptr(d.HPA.MinReplicas),
			MaxReplicas: d.HPA.MaxReplicas,
			Metrics:     metrics,
		},
	}
}

func utilizationMetric(name apiv1.ResourceName, percent int32) autoscalingv2.MetricSpec {
	return autoscalingv2.MetricSpec{
		Type: autoscalingv2.ResourceMetricSourceType,
		Resource: &autoscalingv2.ResourceMetricSource{
			Name: name,
			Target: autoscalingv2.MetricTarget{
				Type:               autoscalingv2.UtilizationMetricType,
				AverageUtilization: int32Ptr(percent),
			},
		},
	}
}
