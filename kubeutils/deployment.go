package kubeutils

import (
	"fmt"
	"strings"

	"Kubernetes-config-generator/model"

	appsv1 "k8s.io/api/apps/v1"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const appLabel = "app"

func mergeLabels(base map[string]string, extra map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func cloneMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	return mergeLabels(nil, in)
}

func appSelector(name string) map[string]string {
	return map[string]string{appLabel: name}
}

// BuildDeployment maps a deployment config onto an apps/v1 Deployment.
func BuildDeployment(d model.DeploymentConfig) *appsv1.Deployment {
	labels := mergeLabels(appSelector(d.AppName), d.Labels)

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        d.AppName,
			Namespace:   d.Namespace,
			Labels:      labels,
			Annotations: cloneMap(d.Annotations),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: resolveReplicaPtr(d.Replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: appSelector(d.AppName),
			},
			Template: apiv1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: mergeLabels(nil, labels),
				},
				Spec: apiv1.PodSpec{
					Containers: BuildContainers(d),
					Volumes:    buildVolumes(d.Volumes),
				},
			},
		},
	}
}

// BuildContainers emits one container per configured entry, or a single
// container synthesized from the legacy top level fields when there are none.
func BuildContainers(d model.DeploymentConfig) []apiv1.Container {
	if len(d.Containers) == 0 {
		name := d.AppName
		if strings.TrimSpace(name) == "" {
			name = "app"
		}
		return []apiv1.Container{
			CreateContainerConfig(name, d.Image, containerPort(d), toVolumeMounts(d.Volumes), toEnvVars(d.EnvVars), d.Resources),
		}
	}

	containers := make([]apiv1.Container, 0, len(d.Containers))
	for i, c := range d.Containers {
		containers = append(containers,
			CreateContainerConfig(ContainerName(c, i), c.Image, c.Port, toMounts(c.VolumeMounts), toEnvVars(c.EnvVars), c.Resources))
	}
	return containers
}

// ContainerName falls back to container-<i> for unnamed entries.
func ContainerName(c model.ContainerConfig, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("container-%d", i)
}

func containerPort(d model.DeploymentConfig) int32 {
	if d.TargetPort > 0 {
		return d.TargetPort
	}
	return d.Port
}

func CreateContainerConfig(name, image string, port int32, mounts []apiv1.VolumeMount, envVars []apiv1.EnvVar, res model.ResourceRequirements) apiv1.Container {
	container := apiv1.Container{
		Name:         name,
		Image:        image,
		Env:          envVars,
		VolumeMounts: mounts,
		Resources:    ConfigResource(res),
	}
	if port > 0 {
		container.Ports = []apiv1.ContainerPort{{ContainerPort: port}}
	}
	return container
}

func toEnvVars(vars []model.EnvVar) []apiv1.EnvVar {
	if len(vars) == 0 {
		return nil
	}
	out := make([]apiv1.EnvVar, 0, len(vars))
	for _, e := range vars {
		if e.Name == "" {
			continue
		}
		env := apiv1.EnvVar{Name: e.Name}
		switch {
		case e.ValueFrom != nil && e.ValueFrom.Kind == model.EnvSourceSecret:
			env.ValueFrom = &apiv1.EnvVarSource{
				SecretKeyRef: &apiv1.SecretKeySelector{
					LocalObjectReference: apiv1.LocalObjectReference{Name: e.ValueFrom.Name},
					Key:                  e.ValueFrom.Key,
				},
			}
		case e.ValueFrom != nil:
			env.ValueFrom = &apiv1.EnvVarSource{
				ConfigMapKeyRef: &apiv1.ConfigMapKeySelector{
					LocalObjectReference: apiv1.LocalObjectReference{Name: e.ValueFrom.Name},
					Key:                  e.ValueFrom.Key,
				},
			}
		default:
			env.Value = e.Value
		}
		out = append(out, env)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toVolumeMounts(vols []model.VolumeConfig) []apiv1.VolumeMount {
	if len(vols) == 0 {
		return nil
	}
	mounts := make([]apiv1.VolumeMount, 0, len(vols))
	for _, v := range vols {
		mounts = append(mounts, apiv1.VolumeMount{Name: v.Name, MountPath: v.MountPath})
	}
	return mounts
}

func toMounts(in []model.VolumeMount) []apiv1.VolumeMount {
	if len(in) == 0 {
		return nil
	}
	mounts := make([]apiv1.VolumeMount, 0, len(in))
	for _, m := range in {
		mounts = append(mounts, apiv1.VolumeMount{Name: m.Name, MountPath: m.MountPath, ReadOnly: m.ReadOnly})
	}
	return mounts
}

// buildVolumes keeps a present but empty list non-nil so it renders as [].
func buildVolumes(vols []model.VolumeConfig) []apiv1.Volume {
	if vols == nil {
		return nil
	}
	out := make([]apiv1.Volume, 0, len(vols))
	for _, v := range vols {
		vol := apiv1.Volume{Name: v.Name}
		switch v.Type {
		case model.VolumeTypeConfigMap:
			vol.VolumeSource.ConfigMap = &apiv1.ConfigMapVolumeSource{
				LocalObjectReference: apiv1.LocalObjectReference{Name: v.ConfigMapName},
			}
		case model.VolumeTypeSecret:
			vol.VolumeSource.Secret = &apiv1.SecretVolumeSource{SecretName: v.SecretName}
		default:
			vol.VolumeSource.EmptyDir = &apiv1.EmptyDirVolumeSource{}
		}
		out = append(out, vol)
	}
	return out
}
