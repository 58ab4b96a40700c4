package model

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyInt32Ptr(in *int32) *int32 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func copyEnvVars(in []EnvVar) []EnvVar {
	if in == nil {
		return nil
	}
	out := make([]EnvVar, len(in))
	for i, e := range in {
		out[i] = e
		if e.ValueFrom != nil {
			src := *e.ValueFrom
			out[i].ValueFrom = &src
		}
	}
	return out
}

func (c ContainerConfig) DeepCopy() ContainerConfig {
	out := c
	out.EnvVars = copyEnvVars(c.EnvVars)
	if c.VolumeMounts != nil {
		out.VolumeMounts = append([]VolumeMount{}, c.VolumeMounts...)
	}
	return out
}

func (d DeploymentConfig) DeepCopy() DeploymentConfig {
	out := d
	out.Labels = copyStringMap(d.Labels)
	out.Annotations = copyStringMap(d.Annotations)
	out.EnvVars = copyEnvVars(d.EnvVars)
	if d.Volumes != nil {
		out.Volumes = append([]VolumeConfig{}, d.Volumes...)
	}
	if d.Containers != nil {
		out.Containers = make([]ContainerConfig, len(d.Containers))
		for i, c := range d.Containers {
			out.Containers[i] = c.DeepCopy()
		}
	}

	out.Ingress.Annotations = copyStringMap(d.Ingress.Annotations)
	if d.Ingress.Rules != nil {
		out.Ingress.Rules = append([]IngressRule{}, d.Ingress.Rules...)
	}
	if d.Ingress.TLS != nil {
		out.Ingress.TLS = make([]IngressTLS, len(d.Ingress.TLS))
		for i, t := range d.Ingress.TLS {
			out.Ingress.TLS[i] = IngressTLS{SecretName: t.SecretName, Hosts: append([]string(nil), t.Hosts...)}
		}
	}

	out.HPA.TargetCPUUtilization = copyInt32Ptr(d.HPA.TargetCPUUtilization)
	out.HPA.TargetMemoryUtilization = copyInt32Ptr(d.HPA.TargetMemoryUtilization)
	return out
}

func (n Namespace) DeepCopy() Namespace {
	out := n
	out.Labels = copyStringMap(n.Labels)
	out.Annotations = copyStringMap(n.Annotations)
	return out
}

func (c ConfigMap) DeepCopy() ConfigMap {
	out := c
	out.Labels = copyStringMap(c.Labels)
	out.Annotations = copyStringMap(c.Annotations)
	out.Data = copyStringMap(c.Data)
	return out
}

func (s Secret) DeepCopy() Secret {
	out := s
	out.Labels = copyStringMap(s.Labels)
	out.Annotations = copyStringMap(s.Annotations)
	out.Data = copyStringMap(s.Data)
	return out
}

// DeepCopy returns a workspace that shares no mutable state with w.
func (w Workspace) DeepCopy() Workspace {
	var out Workspace
	if w.Namespaces != nil {
		out.Namespaces = make([]Namespace, len(w.Namespaces))
		for i, n := range w.Namespaces {
			out.Namespaces[i] = n.DeepCopy()
		}
	}
	if w.Deployments != nil {
		out.Deployments = make([]DeploymentConfig, len(w.Deployments))
		for i, d := range w.Deployments {
			out.Deployments[i] = d.DeepCopy()
		}
	}
	if w.ConfigMaps != nil {
		out.ConfigMaps = make([]ConfigMap, len(w.ConfigMaps))
		for i, c := range w.ConfigMaps {
			out.ConfigMaps[i] = c.DeepCopy()
		}
	}
	if w.Secrets != nil {
		out.Secrets = make([]Secret, len(w.Secrets))
		for i, s := range w.Secrets {
			out.Secrets[i] = s.DeepCopy()
		}
	}
	return out
}
