package workspace

import (
	"fmt"

	"Kubernetes-config-generator/model"

	"github.com/google/uuid"
)

// AddDeployment appends a deployment with default settings and returns its id.
func AddDeployment(ws model.Workspace) (model.Workspace, string) {
	out := ws.DeepCopy()
	d := model.NewDeploymentConfig()
	out.Deployments = append(out.Deployments, d)
	return out, d.ID
}

func findDeployment(ws model.Workspace, id string) int {
	for i, d := range ws.Deployments {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// UpdateDeployment replaces the deployment carrying d.ID.
func UpdateDeployment(ws model.Workspace, d model.DeploymentConfig) (model.Workspace, error) {
	idx := findDeployment(ws, d.ID)
	if idx < 0 {
		return ws, fmt.Errorf("update %q: %w", d.ID, ErrDeploymentNotFound)
	}
	out := ws.DeepCopy()
	out.Deployments[idx] = d.DeepCopy()
	return out, nil
}

// DuplicateDeployment inserts a deep copy right after the original, with a
// fresh id and a "-copy" suffixed name that is unique in the workspace.
func DuplicateDeployment(ws model.Workspace, id string) (model.Workspace, string, error) {
	idx := findDeployment(ws, id)
	if idx < 0 {
		return ws, "", fmt.Errorf("duplicate %q: %w", id, ErrDeploymentNotFound)
	}
	out := ws.DeepCopy()
	dup := out.Deployments[idx].DeepCopy()
	dup.ID = uuid.NewString()
	dup.AppName = copyName(out, dup.AppName)

	deployments := make([]model.DeploymentConfig, 0, len(out.Deployments)+1)
	deployments = append(deployments, out.Deployments[:idx+1]...)
	deployments = append(deployments, dup)
	deployments = append(deployments, out.Deployments[idx+1:]...)
	out.Deployments = deployments
	return out, dup.ID, nil
}

func copyName(ws model.Workspace, name string) string {
	taken := map[string]bool{}
	for _, d := range ws.Deployments {
		taken[d.AppName] = true
	}
	base := "copy"
	if name != "" {
		base = name + "-copy"
	}
	candidate := base
	for i := 2; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

func RemoveDeployment(ws model.Workspace, id string) (model.Workspace, error) {
	idx := findDeployment(ws, id)
	if idx < 0 {
		return ws, fmt.Errorf("remove %q: %w", id, ErrDeploymentNotFound)
	}
	out := ws.DeepCopy()
	out.Deployments = append(out.Deployments[:idx], out.Deployments[idx+1:]...)
	return out, nil
}
