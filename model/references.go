package model

// Reference is a by-name pointer from a deployment to a ConfigMap or Secret.
type Reference struct {
	Kind EnvSourceKind `json:"kind"`
	Name string        `json:"name"`
	// Via names the env var or volume holding the reference.
	Via string `json:"via"`
}

// References lists the ConfigMap and Secret names the rendered deployment
// depends on, in order of appearance. Only env vars and volumes that end
// up in the output are considered.
func (d DeploymentConfig) References() []Reference {
	var refs []Reference
	envRefs := func(vars []EnvVar) {
		for _, e := range vars {
			if e.ValueFrom == nil || e.ValueFrom.Name == "" {
				continue
			}
			refs = append(refs, Reference{Kind: e.ValueFrom.Kind, Name: e.ValueFrom.Name, Via: "env " + e.Name})
		}
	}

	if len(d.Containers) == 0 {
		envRefs(d.EnvVars)
	} else {
		for _, c := range d.Containers {
			envRefs(c.EnvVars)
		}
	}

	for _, v := range d.Volumes {
		switch v.Type {
		case VolumeTypeConfigMap:
			if v.ConfigMapName != "" {
				refs = append(refs, Reference{Kind: EnvSourceConfigMap, Name: v.ConfigMapName, Via: "volume " + v.Name})
			}
		case VolumeTypeSecret:
			if v.SecretName != "" {
				refs = append(refs, Reference{Kind: EnvSourceSecret, Name: v.SecretName, Via: "volume " + v.Name})
			}
		}
	}
	return refs
}

// ReferencedNames returns the distinct names of the given kind in order of
// first appearance.
func (d DeploymentConfig) ReferencedNames(kind EnvSourceKind) []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range d.References() {
		if r.Kind != kind || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names
}
