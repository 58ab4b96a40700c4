package router

import (
	"errors"

	helper "Kubernetes-config-generator/helper"
	"Kubernetes-config-generator/model"
	"Kubernetes-config-generator/workspace"

	"github.com/gofiber/fiber/v2"
)

type workspaceResponse struct {
	Workspace model.Workspace `json:"workspace"`
	ID        string          `json:"id,omitempty"`
}

type validationResponse struct {
	Warnings []workspace.Warning   `json:"warnings"`
	Dangling []workspace.Reference `json:"dangling"`
}

type deploymentRequest struct {
	Workspace  model.Workspace        `json:"workspace"`
	Deployment model.DeploymentConfig `json:"deployment"`
}

type namespaceRequest struct {
	Workspace model.Workspace `json:"workspace"`
	Namespace model.Namespace `json:"namespace"`
}

type configMapRequest struct {
	Workspace model.Workspace `json:"workspace"`
	ConfigMap model.ConfigMap `json:"configMap"`
}

type secretRequest struct {
	Workspace model.Workspace `json:"workspace"`
	Secret    model.Secret    `json:"secret"`
}

// workspaceStatus maps workspace errors to HTTP status codes.
func workspaceStatus(err error) int {
	switch {
	case errors.Is(err, workspace.ErrDeploymentNotFound),
		errors.Is(err, workspace.ErrNamespaceNotFound),
		errors.Is(err, workspace.ErrConfigMapNotFound),
		errors.Is(err, workspace.ErrSecretNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, workspace.ErrNamespaceExists),
		errors.Is(err, workspace.ErrConfigMapExists),
		errors.Is(err, workspace.ErrSecretExists):
		return fiber.StatusConflict
	}
	return fiber.StatusBadRequest
}

func workspaceError(err error) error {
	return fiber.NewError(workspaceStatus(err), err.Error())
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

// @Description	Advisory warnings and missing ConfigMap or Secret references
// @Tags		Workspace
// @Accept		json
// @Produce		json
// @Router		/api/workspace/validate [post]
func (h *Handler) ValidateWorkspace(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	return helper.SendResponse(c, "Workspace validated", validationResponse{
		Warnings: workspace.Validate(ws),
		Dangling: workspace.DanglingReferences(ws),
	}, fiber.StatusOK)
}

// @Description	Append a deployment with default settings
// @Tags		Workspace
// @Accept		json
// @Produce		json
// @Router		/api/workspace/deployments [post]
func (h *Handler) AddDeployment(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, id := workspace.AddDeployment(ws)
	return helper.SendResponse(c, "Deployment added", workspaceResponse{Workspace: ws, ID: id}, fiber.StatusOK)
}

// @Description	Replace the deployment with the same id
// @Tags		Workspace
// @Router		/api/workspace/deployments [put]
func (h *Handler) UpdateDeployment(c *fiber.Ctx) error {
	var req deploymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.UpdateDeployment(req.Workspace, req.Deployment)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Deployment updated", workspaceResponse{Workspace: ws, ID: req.Deployment.ID}, fiber.StatusOK)
}

// @Description	Copy a deployment under a new name
// @Tags		Workspace
// @Param		id	path	string	true	"deployment id"
// @Router		/api/workspace/deployments/{id}/duplicate [post]
func (h *Handler) DuplicateDeployment(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, id, err := workspace.DuplicateDeployment(ws, c.Params("id"))
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Deployment duplicated", workspaceResponse{Workspace: ws, ID: id}, fiber.StatusOK)
}

// @Description	Remove a deployment
// @Tags		Workspace
// @Param		id	path	string	true	"deployment id"
// @Router		/api/workspace/deployments/{id} [delete]
func (h *Handler) RemoveDeployment(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, err := workspace.RemoveDeployment(ws, c.Params("id"))
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Deployment removed", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Create a namespace
// @Tags		Workspace
// @Router		/api/workspace/namespaces [post]
func (h *Handler) AddNamespace(c *fiber.Ctx) error {
	var req namespaceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.AddNamespace(req.Workspace, req.Namespace)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Namespace added", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Delete a namespace, moving its objects to default
// @Tags		Workspace
// @Param		name	path	string	true	"namespace"
// @Router		/api/workspace/namespaces/{name} [delete]
func (h *Handler) DeleteNamespace(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, err := workspace.DeleteNamespace(ws, c.Params("name"))
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Namespace deleted", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Create a ConfigMap
// @Tags		Workspace
// @Router		/api/workspace/configmaps [post]
func (h *Handler) AddConfigMap(c *fiber.Ctx) error {
	var req configMapRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.AddConfigMap(req.Workspace, req.ConfigMap)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "ConfigMap added", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Create a Secret
// @Tags		Workspace
// @Router		/api/workspace/secrets [post]
func (h *Handler) AddSecret(c *fiber.Ctx) error {
	var req secretRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.AddSecret(req.Workspace, req.Secret)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Secret added", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Replace the data of an existing ConfigMap
// @Tags		Workspace
// @Router		/api/workspace/configmaps [put]
func (h *Handler) UpdateConfigMap(c *fiber.Ctx) error {
	var req configMapRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.UpdateConfigMap(req.Workspace, req.ConfigMap)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "ConfigMap updated", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Delete a ConfigMap
// @Tags		Workspace
// @Router		/api/workspace/configmaps/{namespace}/{name} [delete]
func (h *Handler) DeleteConfigMap(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, err := workspace.DeleteConfigMap(ws, c.Params("namespace"), c.Params("name"))
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "ConfigMap deleted", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Replace the data of an existing Secret
// @Tags		Workspace
// @Router		/api/workspace/secrets [put]
func (h *Handler) UpdateSecret(c *fiber.Ctx) error {
	var req secretRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ws, err := workspace.UpdateSecret(req.Workspace, req.Secret)
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Secret updated", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}

// @Description	Delete a Secret
// @Tags		Workspace
// @Router		/api/workspace/secrets/{namespace}/{name} [delete]
func (h *Handler) DeleteSecret(c *fiber.Ctx) error {
	var ws model.Workspace
	if err := parseBody(c, &ws); err != nil {
		return err
	}
	ws, err := workspace.DeleteSecret(ws, c.Params("namespace"), c.Params("name"))
	if err != nil {
		return workspaceError(err)
	}
	return helper.SendResponse(c, "Secret deleted", workspaceResponse{Workspace: ws}, fiber.StatusOK)
}
