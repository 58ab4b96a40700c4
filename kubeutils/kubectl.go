package kubeutils

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// MarshalObject renders the typed object the way kubectl prints it, going
// through its JSON tags. Field order follows the API types.
func MarshalObject(r Resource) (string, error) {
	out, err := yaml.Marshal(r.Object())
	if err != nil {
		return "", fmt.Errorf("marshal %s %s: %w", r.Kind(), r.Name(), err)
	}
	return string(out), nil
}
