package router

import (
	"context"

	"Kubernetes-config-generator/export"
	helper "Kubernetes-config-generator/helper"
	"Kubernetes-config-generator/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// exportOptions applies the strict and style query parameters on top of the
// configured defaults.
func (h *Handler) exportOptions(c *fiber.Ctx) (export.Options, error) {
	opts := h.export
	strict, err := helper.QueryBool(c, "strict", opts.StrictSeparators)
	if err != nil {
		return opts, err
	}
	opts.StrictSeparators = strict
	if raw := c.Query("style"); raw != "" {
		style, err := export.ParseStyle(raw)
		if err != nil {
			return opts, err
		}
		opts.Style = style
	}
	return opts, nil
}

func (h *Handler) generate(c *fiber.Ctx) (export.Result, error) {
	var ws model.Workspace
	if err := c.BodyParser(&ws); err != nil {
		return export.Result{}, fiber.NewError(fiber.StatusBadRequest, "invalid workspace: "+err.Error())
	}
	opts, err := h.exportOptions(c)
	if err != nil {
		return export.Result{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return export.Generate(ws, opts), nil
}

// @Description	Render the workspace as multi-document YAML
// @Summary		Preview the export
// @Tags		Export
// @Accept		json
// @Produce		json
// @Param		strict	query	bool	false	"separate deployment blocks with ---"
// @Param		style	query	string	false	"classic or kubectl"
// @Router		/api/export/preview [post]
func (h *Handler) PreviewExport(c *fiber.Ctx) error {
	res, err := h.generate(c)
	if err != nil {
		return err
	}
	return helper.SendResponse(c, "Export generated", res, fiber.StatusOK)
}

// @Description	Download the workspace export as a YAML file
// @Summary		Download the export
// @Tags		Export
// @Accept		json
// @Produce		application/yaml
// @Router		/api/export/download [post]
func (h *Handler) DownloadExport(c *fiber.Ctx) error {
	res, err := h.generate(c)
	if err != nil {
		return err
	}
	log.Infof("export downloaded: %s (%d resources)", res.Filename, res.Summary.Resources)
	// fasthttp reuses the request context once the handler returns.
	h.stats.RecordExport(context.Background())
	return helper.SendAttachment(c, res.Filename, "application/yaml", []byte(res.YAML))
}
